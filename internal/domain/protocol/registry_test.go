package protocol

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestEverySeededCategoryHasAProtocol(t *testing.T) {
	reg := NewRegistry()
	for _, category := range reg.Categories() {
		protocols := reg.ByCategory(category)
		if len(protocols) == 0 {
			t.Errorf("category %q listed but has no protocols", category)
		}
		for _, p := range protocols {
			if p.ConditionCategory != category {
				t.Errorf("protocol %q filed under %q but declares %q", p.Name, category, p.ConditionCategory)
			}
		}
	}
	for _, want := range []cdesmodels.ConditionCategory{
		cdesmodels.CategoryChronicPain, cdesmodels.CategoryAnxiety,
		cdesmodels.CategoryPTSD, cdesmodels.CategoryInsomnia,
		cdesmodels.CategoryNausea, cdesmodels.CategorySeizures,
		cdesmodels.CategoryMuscleSpasms, cdesmodels.CategoryAppetiteLoss,
	} {
		if len(reg.ByCategory(want)) == 0 {
			t.Errorf("expected curated protocol for %q", want)
		}
	}
}

func TestRegistryIDsAreStable(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	for _, p := range a.All() {
		if b.ByID(p.ID) == nil {
			t.Errorf("protocol %q id %s not stable across registry builds", p.Name, p.ID)
		}
	}
}

func TestSeededProfilesAreValid(t *testing.T) {
	for _, p := range NewRegistry().All() {
		if !p.ConditionCategory.Valid() {
			t.Errorf("protocol %q has unknown category %q", p.Name, p.ConditionCategory)
		}
		for name, v := range p.RecommendedProfile.TerpeneProfile {
			if v < 0 || v > 1 {
				t.Errorf("protocol %q terpene %q proportion %v out of range", p.Name, name, v)
			}
		}
		for _, m := range p.RecommendedProfile.ConsumptionMethods {
			if !m.Valid() {
				t.Errorf("protocol %q has unknown consumption method %q", p.Name, m)
			}
		}
		if p.DosingGuidance != nil && p.DosingGuidance.Route != nil && !p.DosingGuidance.Route.Valid() {
			t.Errorf("protocol %q has unknown route %q", p.Name, *p.DosingGuidance.Route)
		}
	}
}

func TestServiceForCategory(t *testing.T) {
	svc := NewService(NewRegistry())

	protocols, err := svc.ForCategory("chronic_pain")
	if err != nil {
		t.Fatalf("ForCategory: %v", err)
	}
	if len(protocols) == 0 {
		t.Fatal("expected chronic_pain protocols")
	}

	if _, err := svc.ForCategory("hangnail"); err == nil {
		t.Error("unknown category should fail validation")
	} else {
		var ve *cdesmodels.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	}

	// glaucoma is a valid category with no curated protocol yet.
	if _, err := svc.ForCategory("glaucoma"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for uncurated category, got %v", err)
	}
}

func TestServiceGet(t *testing.T) {
	svc := NewService(NewRegistry())
	all := svc.All()
	if len(all) == 0 {
		t.Fatal("registry should not be empty")
	}
	got, err := svc.Get(all[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != all[0].Name {
		t.Errorf("got %q, want %q", got.Name, all[0].Name)
	}
	if _, err := svc.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
