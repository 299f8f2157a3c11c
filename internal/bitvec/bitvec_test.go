// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitvec

import (
	"slices"
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&V[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&V[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&V[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&V[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&V[uint64]{}).nbit()},
		{int(unsafe.Sizeof(uintptr(0))) * 8, (&V[uintptr]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("V[T].nbit:\nhave %d\nwant %d", x[0], x[1])
		}
	}
}

func TestZero(t *testing.T) {
	var v16 V[uint16]
	if n := v16.Len(); n != 0 {
		t.Fatalf("v16.Len:\nhave %d\nwant 0", n)
	}
	if n := v16.Rem(); n != 0 {
		t.Fatalf("v16.Rem:\nhave %d\nwant 0", n)
	}
	if _, ok := v16.Search(); ok {
		t.Fatal("v16.Search:\nhave true\nwant false")
	}
	if v16.IsSet(0) {
		t.Fatal("v16.IsSet(0):\nhave true\nwant false")
	}
}

func TestGrow(t *testing.T) {
	var v32 V[uint32]
	for _, x := range [...]struct {
		nplus, wantLen int
	}{
		{1, 32},
		{2, 96},
		{0, 96},
		{-1, 96},
		{5, 256},
	} {
		if n, i := v32.Len(), v32.Grow(x.nplus); n != i {
			t.Fatalf("v32.Grow:\nhave %d\nwant %d", i, n)
		}
		if n := v32.Len(); n != x.wantLen {
			t.Fatalf("v32.Grow: Len:\nhave %d\nwant %d", n, x.wantLen)
		}
		if n := v32.Rem(); n != x.wantLen {
			t.Fatalf("v32.Grow: Rem:\nhave %d\nwant %d", n, x.wantLen)
		}
	}
}

func TestSetUnset(t *testing.T) {
	var v8 V[uint8]
	v8.Grow(2)
	for _, i := range [...]int{0, 3, 7, 8, 15} {
		v8.Set(i)
		if !v8.IsSet(i) {
			t.Fatalf("v8.Set(%d): IsSet:\nhave false\nwant true", i)
		}
	}
	// Setting twice must not change Rem.
	v8.Set(3)
	if n := v8.Rem(); n != 11 {
		t.Fatalf("v8.Rem:\nhave %d\nwant 11", n)
	}
	if s := slices.Collect(v8.All()); !slices.Equal(s, []int{0, 3, 7, 8, 15}) {
		t.Fatalf("v8.All:\nhave %v\nwant [0 3 7 8 15]", s)
	}
	v8.Unset(7)
	v8.Unset(7)
	if v8.IsSet(7) {
		t.Fatal("v8.Unset(7): IsSet:\nhave true\nwant false")
	}
	if n := v8.Rem(); n != 12 {
		t.Fatalf("v8.Rem:\nhave %d\nwant 12", n)
	}
	if v8.IsSet(-1) || v8.IsSet(16) {
		t.Fatal("v8.IsSet: out of range index reported as set")
	}
	v8.Clear()
	if n := v8.Rem(); n != 16 {
		t.Fatalf("v8.Clear: Rem:\nhave %d\nwant 16", n)
	}
	if s := slices.Collect(v8.All()); len(s) != 0 {
		t.Fatalf("v8.Clear: All:\nhave %v\nwant []", s)
	}
}

func TestSearch(t *testing.T) {
	var v V[uint16]
	v.Grow(2)
	for i := 0; i < 32; i++ {
		idx, ok := v.Search()
		if !ok || idx != i {
			t.Fatalf("v.Search:\nhave %d, %t\nwant %d, true", idx, ok, i)
		}
		v.Set(idx)
	}
	if _, ok := v.Search(); ok {
		t.Fatal("v.Search (full):\nhave true\nwant false")
	}
	v.Unset(20)
	v.Unset(5)
	if idx, ok := v.Search(); !ok || idx != 5 {
		t.Fatalf("v.Search:\nhave %d, %t\nwant 5, true", idx, ok)
	}
}
