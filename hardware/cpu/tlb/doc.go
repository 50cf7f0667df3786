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

// Package tlb implements the 32 entry, fully associative translation
// lookaside buffer of the VR4300.
//
// Each entry maps a pair of adjacent pages (an even page and an odd page) of
// between 4KB and 16MB. The lookup is a linear scan in index order and the
// first matching entry wins.
//
// A virtual address matches an entry when the address, masked by the entry's
// page size, equals the entry's VPN2 and either the entry is global or the
// entry's ASID equals the ASID in the EntryHi register. The checkbit of the
// entry selects between the even and odd page; the selected page must have
// its valid bit set.
//
// For speed, the fields that are required for translation are derived from
// the raw register values whenever an entry is written (see Entry.update()).
// The derived fields are never written directly.
//
// Failed translations (other than through TranslateInternal()) raise exactly
// one exception through the ExceptionRaiser. Before the exception is raised
// the BadVAddr, Context and EntryHi registers are loaded with the faulting
// address:
//
//	miss                 TLBL/TLBS  refill vector (general vector if EXL set)
//	invalid              TLBL/TLBS  general vector
//	write to clean page  Mod        general vector
//
// The MRU option remembers the index of the most recently matched entry. A
// hint is only trusted when no lower-indexed entry also matches the address,
// so the result is always the same as the linear scan. It is off by default.
// Games that write overlapping entries have only been checked against the
// linear scan.
package tlb
