package testutils

import (
	"reflect"
	"sort"
	"testing"
)

func Compare(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
		t.Errorf("difference %+v", Difference(got, want))
	}
}

// CompareMapKeys checks that keys of the map are exactly the wanted strings
func CompareMapKeys[V any](t *testing.T, got map[string]V, want []string) {
	t.Helper()
	keys := make([]string, 0, len(got))
	for k := range got {
		keys = append(keys, k)
	}
	if d := Difference(keys, want); len(d) > 0 {
		t.Errorf("got keys %+v, want %+v", keys, want)
		t.Errorf("difference %+v", d)
	}
}

// Difference between two slices, sorted
func Difference(slice1, slice2 []string) []string {
	diff := []string{}
	m := map[string]int{}

	for _, v := range slice1 {
		m[v] = 1
	}
	for _, v := range slice2 {
		m[v] = m[v] + 1
	}

	for k, v := range m {
		if v == 1 {
			diff = append(diff, k)
		}
	}
	sort.Strings(diff)

	return diff
}
