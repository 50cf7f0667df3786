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

package cop1

import (
	"math"

	"github.com/gopher64/gopher64/curated"
)

// Function field values of the arithmetic instructions.
const (
	fnADD     = 0
	fnSUB     = 1
	fnMUL     = 2
	fnDIV     = 3
	fnSQRT    = 4
	fnABS     = 5
	fnMOV     = 6
	fnNEG     = 7
	fnROUNDL  = 8
	fnTRUNCL  = 9
	fnCEILL   = 10
	fnFLOORL  = 11
	fnROUNDW  = 12
	fnTRUNCW  = 13
	fnCEILW   = 14
	fnFLOORW  = 15
	fnCVTS    = 32
	fnCVTD    = 33
	fnCVTW    = 36
	fnCVTL    = 37
	fnCompare = 48
)

// Execute an arithmetic instruction. The format is the rs field of the
// instruction and funct the function field.
func (fpu *FPU) Execute(format int, funct int, fs int, ft int, fd int) error {
	switch format {
	case FmtS, FmtD:
		return fpu.executeFloat(format, funct, fs, ft, fd)
	case FmtW, FmtL:
		return fpu.executeFixed(format, funct, fs, fd)
	}
	return curated.Errorf(UnimplementedFunction, fmtName(format), funct)
}

// read a floating point operand. single precision values are widened, which
// is exact
func (fpu *FPU) read(format int, r int) float64 {
	if format == FmtS {
		return float64(fpu.ReadFloat32(r))
	}
	return fpu.ReadFloat64(r)
}

func (fpu *FPU) write(format int, r int, v float64) {
	if format == FmtS {
		fpu.WriteFloat32(r, float32(v))
		return
	}
	fpu.WriteFloat64(r, v)
}

func (fpu *FPU) round(v float64, mode int) float64 {
	switch mode {
	case RoundZero:
		return math.Trunc(v)
	case RoundCeil:
		return math.Ceil(v)
	case RoundFloor:
		return math.Floor(v)
	}
	return math.RoundToEven(v)
}

func (fpu *FPU) executeFloat(format int, funct int, fs int, ft int, fd int) error {
	if funct >= fnCompare {
		a := fpu.read(format, fs)
		b := fpu.read(format, ft)
		unordered := math.IsNaN(a) || math.IsNaN(b)
		var c bool
		if funct&0x1 != 0 && unordered {
			c = true
		}
		if funct&0x2 != 0 && !unordered && a == b {
			c = true
		}
		if funct&0x4 != 0 && !unordered && a < b {
			c = true
		}
		fpu.SetCondition(c)
		return nil
	}

	switch funct {
	case fnADD:
		if format == FmtS {
			fpu.WriteFloat32(fd, fpu.ReadFloat32(fs)+fpu.ReadFloat32(ft))
		} else {
			fpu.WriteFloat64(fd, fpu.ReadFloat64(fs)+fpu.ReadFloat64(ft))
		}
	case fnSUB:
		if format == FmtS {
			fpu.WriteFloat32(fd, fpu.ReadFloat32(fs)-fpu.ReadFloat32(ft))
		} else {
			fpu.WriteFloat64(fd, fpu.ReadFloat64(fs)-fpu.ReadFloat64(ft))
		}
	case fnMUL:
		if format == FmtS {
			fpu.WriteFloat32(fd, fpu.ReadFloat32(fs)*fpu.ReadFloat32(ft))
		} else {
			fpu.WriteFloat64(fd, fpu.ReadFloat64(fs)*fpu.ReadFloat64(ft))
		}
	case fnDIV:
		if format == FmtS {
			fpu.WriteFloat32(fd, fpu.ReadFloat32(fs)/fpu.ReadFloat32(ft))
		} else {
			fpu.WriteFloat64(fd, fpu.ReadFloat64(fs)/fpu.ReadFloat64(ft))
		}
	case fnSQRT:
		fpu.write(format, fd, math.Sqrt(fpu.read(format, fs)))
	case fnABS:
		fpu.write(format, fd, math.Abs(fpu.read(format, fs)))
	case fnMOV:
		if format == FmtS {
			fpu.WriteInt32(fd, fpu.ReadInt32(fs))
		} else {
			fpu.WriteInt64(fd, fpu.ReadInt64(fs))
		}
	case fnNEG:
		fpu.write(format, fd, -fpu.read(format, fs))
	case fnROUNDL, fnTRUNCL, fnCEILL, fnFLOORL:
		v := fpu.round(fpu.read(format, fs), funct-fnROUNDL)
		fpu.WriteInt64(fd, uint64(int64(v)))
	case fnROUNDW, fnTRUNCW, fnCEILW, fnFLOORW:
		v := fpu.round(fpu.read(format, fs), funct-fnROUNDW)
		fpu.WriteInt32(fd, uint32(int32(v)))
	case fnCVTS:
		if format == FmtS {
			return curated.Errorf(UnimplementedFunction, fmtName(format), funct)
		}
		fpu.WriteFloat32(fd, float32(fpu.ReadFloat64(fs)))
	case fnCVTD:
		if format == FmtD {
			return curated.Errorf(UnimplementedFunction, fmtName(format), funct)
		}
		fpu.WriteFloat64(fd, float64(fpu.ReadFloat32(fs)))
	case fnCVTW:
		v := fpu.round(fpu.read(format, fs), int(fpu.fcr31&FCR31RM))
		fpu.WriteInt32(fd, uint32(int32(v)))
	case fnCVTL:
		v := fpu.round(fpu.read(format, fs), int(fpu.fcr31&FCR31RM))
		fpu.WriteInt64(fd, uint64(int64(v)))
	default:
		return curated.Errorf(UnimplementedFunction, fmtName(format), funct)
	}

	return nil
}

func (fpu *FPU) executeFixed(format int, funct int, fs int, fd int) error {
	var v float64
	if format == FmtW {
		v = float64(int32(fpu.ReadInt32(fs)))
	} else {
		v = float64(int64(fpu.ReadInt64(fs)))
	}

	switch funct {
	case fnCVTS:
		fpu.WriteFloat32(fd, float32(v))
	case fnCVTD:
		fpu.WriteFloat64(fd, v)
	default:
		return curated.Errorf(UnimplementedFunction, fmtName(format), funct)
	}

	return nil
}
