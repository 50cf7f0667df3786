// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

// Package dynarec implements the fragment cache of the CPU's dynamic
// recompiler.
//
// The CPU counts how many times each program counter is reached by the
// interpreter. When the count reaches the hot threshold a Fragment is created
// for the address. The next time the CPU reaches the address it begins
// building the fragment. As each instruction is interpreted, a pre-decoded
// version of the instruction (an Op) is appended to the fragment. Building
// stops when:
//
//	the maximum number of ops has been reached
//	the instruction did not leave the program counter at the next address
//	the CPU has pending work (an interrupt check, a halt request, etc.)
//	the instruction is a timing barrier (see Barrier())
//
// The fragment is then sealed. Sealing creates a routine that runs the ops in
// sequence. An op returns false if execution cannot continue with the next op
// in the fragment, in which case the routine returns early with the number of
// ops that were executed. This is the number of cycles the CPU must account
// for.
//
// Fragments are invalidated when the memory they were built from is written
// to. The page bitmap is consulted first so that writes to pages that contain
// no fragment code are cheap. Invalidated fragments keep their entry in the
// cache and are rebuilt when they are next reached.
//
// The cache does not know anything about the CPU and the CPU decides which
// addresses are suitable for fragments.
package dynarec
