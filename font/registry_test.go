package font

import "testing"

func TestFamilyLookup(t *testing.T) {
	r := NewRegistry()
	fam := r.familyOrCreate("Sans")
	if fam.Name != "Sans" || fam.ID != 0 {
		t.Fatalf("unexpected family %+v", fam)
	}
	again := r.familyOrCreate("Sans")
	if again != fam {
		t.Fatalf("familyOrCreate should persist the same family across calls")
	}
	if _, ok := r.FamilyByName("sans"); ok {
		t.Fatalf("family lookup must be case-sensitive")
	}
	id, ok := r.FamilyByName("Sans")
	if !ok || id != fam.ID {
		t.Fatalf("FamilyByName(Sans) = (%d, %v)", id, ok)
	}
	if _, ok := r.Family(FamilyId(5)); ok {
		t.Fatalf("Family should bounds-check out-of-range ids")
	}
}

func TestInsertMemberStableSortByWeight(t *testing.T) {
	r := NewRegistry()
	fam := r.familyOrCreate("Sans")
	add := func(w Weight) FontId {
		id := FontId(len(r.fonts))
		r.fonts = append(r.fonts, Font{ID: id, Attributes: Attributes{Weight: w}})
		r.insertMember(fam, id, Attributes{Weight: w})
		return id
	}
	idA := add(400)
	idB := add(400) // equal weight: must sort after idA (stable).
	idC := add(300)
	idD := add(700)

	got := fam.Members
	want := []FontId{idC, idA, idB, idD}
	if len(got) != len(want) {
		t.Fatalf("len(members) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("members[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestDuplicateAttributesRejected(t *testing.T) {
	r := NewRegistry()
	fam := r.familyOrCreate("Sans")
	id := FontId(len(r.fonts))
	r.fonts = append(r.fonts, Font{ID: id, Attributes: DefaultAttributes})
	r.insertMember(fam, id, DefaultAttributes)
	if !r.hasAttributes(fam, DefaultAttributes) {
		t.Fatalf("hasAttributes should report the just-inserted triple as present")
	}
}
