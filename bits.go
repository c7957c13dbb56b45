// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import "math"

// Bit-pattern reinterpretations between floating-point values and same-width
// integers. These are total functions: NaN payloads, signed zero and the
// infinities pass through unchanged in both directions.

// Float64Bits returns the IEEE 754 bit pattern of f as an unsigned integer.
func Float64Bits(f float64) uint64 { return math.Float64bits(f) }

// Float64FromBits returns the float64 with the given bit pattern.
func Float64FromBits(b uint64) float64 { return math.Float64frombits(b) }

// Float64Int64Bits returns the bit pattern of f reinterpreted as a signed
// integer.
func Float64Int64Bits(f float64) int64 { return int64(math.Float64bits(f)) }

// Float64FromInt64Bits returns the float64 whose bit pattern is b.
func Float64FromInt64Bits(b int64) float64 { return math.Float64frombits(uint64(b)) }

// Float32Bits returns the IEEE 754 bit pattern of f as an unsigned integer.
func Float32Bits(f float32) uint32 { return math.Float32bits(f) }

// Float32FromBits returns the float32 with the given bit pattern.
func Float32FromBits(b uint32) float32 { return math.Float32frombits(b) }

// Float32Int32Bits returns the bit pattern of f reinterpreted as a signed
// integer.
func Float32Int32Bits(f float32) int32 { return int32(math.Float32bits(f)) }

// Float32FromInt32Bits returns the float32 whose bit pattern is b.
func Float32FromInt32Bits(b int32) float32 { return math.Float32frombits(uint32(b)) }
