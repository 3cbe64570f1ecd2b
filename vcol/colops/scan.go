// Copyright 2026 go-column Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package colops

import "github.com/ajroetker/go-column/vcol"

// Provider supplies the scan input one pack at a time. It is a function
// rather than a Column so call sites can scan derived quantities without
// materializing them:
//
//	minusDelta := func(ip int) vcol.Pack[float64] { return vcol.Neg(delta.Packs[ip]) }
type Provider[T vcol.Floats] func(ip int) vcol.Pack[T]

// FromColumn returns a Provider reading the column's packs.
func FromColumn[T vcol.Floats](c vcol.Column[T]) Provider[T] {
	return func(ip int) vcol.Pack[T] { return c.Packs[ip] }
}

// Scan computes a running sum over sum.Layout.NumLevels levels, starting
// from seed. Forward scans run from level 0 down the column; backward scans
// run from the last level up. Inclusive means level k's own input
// contributes to sum(k); exclusive means it contributes only to the next
// level in the scan direction.
//
// The seed is assumed to be the correct boundary value: the scan never
// re-derives it. The scan is strictly sequential and must run on a single
// task per column.
func Scan[T vcol.Floats](forward, inclusive bool, input Provider[T], sum vcol.Column[T], seed T) {
	lay := sum.Layout
	if forward {
		acc := seed
		for ip := 0; ip < lay.NumPacks; ip++ {
			vecEnd := vcol.Width - 1
			if ip == lay.LastPack {
				vecEnd = lay.LastPackEnd
			}

			// An exclusive scan never reads the input lane it writes, so the
			// final pack's input may not exist; fetch lazily.
			var in vcol.Pack[T]
			if inclusive || vecEnd >= 1 {
				in = input(ip)
			}

			s := &sum.Packs[ip]
			if inclusive {
				s[0] = acc + in[0]
			} else {
				s[0] = acc
			}
			for iv := 1; iv <= vecEnd; iv++ {
				if inclusive {
					s[iv] = s[iv-1] + in[iv]
				} else {
					s[iv] = s[iv-1] + in[iv-1]
				}
			}

			if ip < lay.LastPack {
				if inclusive {
					acc = s[vecEnd]
				} else {
					acc = s[vecEnd] + in[vecEnd]
				}
			}
		}
	} else {
		acc := seed
		for ip := lay.LastPack; ip >= 0; ip-- {
			vecStart := vcol.Width - 1
			if ip == lay.LastPack {
				vecStart = lay.LastPackEnd
			}

			var in vcol.Pack[T]
			if inclusive || vecStart >= 1 || ip > 0 {
				in = input(ip)
			}

			s := &sum.Packs[ip]
			if inclusive {
				s[vecStart] = acc + in[vecStart]
			} else {
				s[vecStart] = acc
			}
			for iv := vecStart - 1; iv >= 0; iv-- {
				if inclusive {
					s[iv] = s[iv+1] + in[iv]
				} else {
					s[iv] = s[iv+1] + in[iv+1]
				}
			}

			if ip > 0 {
				if inclusive {
					acc = s[0]
				} else {
					acc = s[0] + in[0]
				}
			}
		}
	}
}

// ScanMidToInt integrates a midpoint-valued input onto the interface grid.
// The boundary interface in the scan's starting direction (top for forward,
// bottom for backward) is assumed to already hold the desired boundary
// value; the remaining interfaces are filled so that
//
//	forward:  sum(k+1) = sum(k) + input(k)
//	backward: sum(k)   = sum(k+1) + input(k)
//
// The forward case is an exclusive scan over the interface grid; the
// backward case is cast as an inclusive scan over the midpoint grid cropped
// onto the same storage, seeded from the bottom interface. This asymmetry
// lets the same routine integrate pressure from the top down and
// geopotential from the ground up, in each case starting from where the
// boundary condition is known.
func ScanMidToInt[T vcol.Floats](forward bool, input Provider[T], sum vcol.Column[T]) {
	ints := sum.Layout
	mids := vcol.NewLayout(ints.NumLevels - 1)
	if forward {
		seed := sum.Packs[0][0]
		Scan(true, false, input, sum, seed)
	} else {
		// The provider has no input at the bottom interface, so crop the
		// output to the midpoint grid; the bottom interface lane is left
		// untouched and seeds the scan.
		seed := sum.Packs[ints.LastPack][ints.LastPackEnd]
		cropped := vcol.WrapColumn(sum.Packs, mids)
		Scan(false, true, input, cropped, seed)
	}
}
