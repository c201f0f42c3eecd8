// dimen_test.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package dimen

import (
	"testing"

	"github.com/seehuhn/texmacro/tex/texerr"
)

func TestRoundDecimals(t *testing.T) {
	testCases := []struct {
		digits   []int
		expected int64
	}{
		{nil, 0},
		{[]int{0}, 0},
		{[]int{5}, 32768},
		{[]int{2, 7}, 17695},
		{[]int{9, 9, 9, 9, 9}, 65535},
		{[]int{9, 9, 9, 9, 9, 9}, 65536},
	}
	for i, testCase := range testCases {
		got := RoundDecimals(testCase.digits)
		if got != testCase.expected {
			t.Errorf("%d: expected %d, got %d", i, testCase.expected, got)
		}
	}
}

func TestScale(t *testing.T) {
	testCases := []struct {
		integer  int64
		unit     string
		expected Dimen
	}{
		{1, "pt", 65536},
		{1, "in", 4736286},
		{1, "pc", 786432},
		{1, "cm", 1864679},
		{1, "mm", 186467},
		{1, "bp", 65781},
		{1, "dd", 70124},
		{1, "cc", 841489},
	}
	for _, testCase := range testCases {
		got, err := Scale(testCase.integer, 0, testCase.unit)
		if err != nil {
			t.Errorf("%s: %s", testCase.unit, err)
			continue
		}
		if got != testCase.expected {
			t.Errorf("1%s: expected %dsp, got %dsp",
				testCase.unit, testCase.expected, got)
		}
	}

	_, err := Scale(16384, 0, "pt")
	if !texerr.Is(err, texerr.DimenTooLarge) {
		t.Errorf("expected dimension too large, got %v", err)
	}
	_, err = Scale(1, 0, "xx")
	if !texerr.Is(err, texerr.IllegalUnit) {
		t.Errorf("expected illegal unit, got %v", err)
	}
}

func TestInchVersusPoints(t *testing.T) {
	in, _ := Scale(1, 0, "in")
	pt, _ := Scale(72, RoundDecimals([]int{2, 7}), "pt")
	diff := in - pt
	if diff < -1 || diff > 1 {
		t.Errorf("1in=%dsp and 72.27pt=%dsp differ by more than rounding", in, pt)
	}
}

func TestMagnify(t *testing.T) {
	i, f, err := Magnify(1, 0, 2000)
	if err != nil {
		t.Fatal(err)
	}
	if i != 0 || f != 32768 {
		t.Errorf("wrong result %d+%d/65536", i, f)
	}
	_, _, err = Magnify(1, 0, 0)
	if !texerr.Is(err, texerr.IllegalMag) {
		t.Errorf("expected illegal magnification, got %v", err)
	}
}

func TestFormatScaled(t *testing.T) {
	testCases := []struct {
		in       Dimen
		expected string
	}{
		{0, "0.0pt"},
		{Points(12), "12.0pt"},
		{4736286, "72.26999pt"},
		{-32768, "-0.5pt"},
		{1, "0.00002pt"},
		{MaxDimen, "16383.99998pt"},
	}
	for _, testCase := range testCases {
		got := testCase.in.String()
		if got != testCase.expected {
			t.Errorf("%dsp: expected %q, got %q", testCase.in, testCase.expected, got)
		}
	}
}

func TestDimenArithmetic(t *testing.T) {
	d, err := Points(3).Multiply(2)
	if err != nil || d != Points(6) {
		t.Errorf("wrong product %v (%v)", d, err)
	}
	d, err = Dimen(-7).Divide(2)
	if err != nil || d != -3 {
		t.Errorf("division must truncate towards zero, got %v (%v)", d, err)
	}
	_, err = Points(1).Divide(0)
	if !texerr.Is(err, texerr.ArithmeticOverflow) {
		t.Errorf("expected division by zero, got %v", err)
	}
	_, err = MaxDimen.Add(1)
	if !texerr.Is(err, texerr.ArithmeticOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
}

func TestIntArithmetic(t *testing.T) {
	_, err := MultInt(MaxInt, 2)
	if !texerr.Is(err, texerr.ArithmeticOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
	_, err = DivInt(5, 0)
	if !texerr.Is(err, texerr.ArithmeticOverflow) {
		t.Errorf("expected division by zero, got %v", err)
	}
	v, err := AddInt(-3, 5)
	if err != nil || v != 2 {
		t.Errorf("wrong sum %d (%v)", v, err)
	}
}

func TestGlueAdd(t *testing.T) {
	a := Glue{
		Width:   Points(1),
		Stretch: GlueComponent{Value: Points(2), Order: Normal},
		Shrink:  GlueComponent{Value: Points(1), Order: Fil},
	}
	b := Glue{
		Width:   Points(2),
		Stretch: GlueComponent{Value: Points(1), Order: Fill},
		Shrink:  GlueComponent{Value: Points(3), Order: Normal},
	}
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	expected := Glue{
		Width:   Points(3),
		Stretch: GlueComponent{Value: Points(1), Order: Fill},
		Shrink:  GlueComponent{Value: Points(1), Order: Fil},
	}
	if sum != expected {
		t.Errorf("expected %v, got %v", expected, sum)
	}

	same, err := a.Add(a)
	if err != nil {
		t.Fatal(err)
	}
	if same.Stretch.Value != Points(4) || same.Shrink != (GlueComponent{Points(2), Fil}) {
		t.Errorf("same-order components not added: %v", same)
	}

	cancel, _ := a.Add(a.Negate())
	if cancel != ZeroGlue {
		t.Errorf("expected zero glue, got %v", cancel)
	}
}

func TestGlueString(t *testing.T) {
	g := Glue{
		Width:   Points(3),
		Stretch: GlueComponent{Value: Points(1), Order: Fill},
		Shrink:  GlueComponent{Value: Points(2), Order: Normal},
	}
	expected := "3.0pt plus 1.0fill minus 2.0pt"
	if g.String() != expected {
		t.Errorf("expected %q, got %q", expected, g.String())
	}
}
