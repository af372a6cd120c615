package model

import (
	"errors"
	"math"
	"testing"
)

func TestDiscretizationFits(t *testing.T) {
	cases := []struct {
		d     Discretization
		limit int
		want  bool
	}{
		{Discretization{Nodes: 10, Steps: 9}, 100, true},
		{Discretization{Nodes: 10, Steps: 10}, 100, false},
		{Discretization{Nodes: 2, Steps: math.MaxInt}, MaxFieldCells, false},
		{Discretization{Nodes: math.MaxInt, Steps: 1}, MaxFieldCells, false},
		{Discretization{Nodes: 10, Steps: -1}, 100, true},
	}
	for _, c := range cases {
		if got := c.d.Fits(c.limit); got != c.want {
			t.Errorf("%+v.Fits(%d) = %v, want %v", c.d, c.limit, got, c.want)
		}
	}
	if err := (Discretization{Nodes: 10, TimeStep: 1, Steps: math.MaxInt}).Validate(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("max steps: err = %v, want ErrConfiguration", err)
	}
}

func TestBoundaryConditionsGroundTemperature(t *testing.T) {
	base := BoundaryConditions{Role: Supply, SupplyTemperature: 70, ReturnTemperature: 40, GroundTemperature: 10, Length: 15, MassFlow: 0.01}
	cases := []struct {
		name string
		mod  func(*BoundaryConditions)
		want error
	}{
		{"supply at ground", func(b *BoundaryConditions) { b.SupplyTemperature = 10 }, ErrConfiguration},
		{"supply pipe, return at ground", func(b *BoundaryConditions) { b.ReturnTemperature = 10 }, nil},
		{"return at ground", func(b *BoundaryConditions) { b.Role, b.ReturnTemperature = Return, 10 }, ErrConfiguration},
		{"return pipe, supply at ground", func(b *BoundaryConditions) { b.Role, b.SupplyTemperature = Return, 10 }, nil},
	}
	for _, c := range cases {
		b := base
		c.mod(&b)
		if err := b.Validate(); !errors.Is(err, c.want) {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
}

func TestParseCapacityModel(t *testing.T) {
	if m, err := ParseCapacityModel(" Insulation "); err != nil || m != CapacityInsulation {
		t.Errorf("ParseCapacityModel = %q, %v", m, err)
	}
	if _, err := ParseCapacityModel("wall"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}
