package protocol

import (
	"sort"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/domain/recommendation"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// Registry serves the curated protocol set. Protocol ids are derived from
// the protocol name in a fixed namespace so they are stable across restarts.
type Registry struct {
	byCategory map[cdesmodels.ConditionCategory][]*TreatmentProtocol
	byID       map[uuid.UUID]*TreatmentProtocol
}

// protocolNamespace seeds uuid.NewSHA1 for stable protocol ids.
var protocolNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

func NewRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[cdesmodels.ConditionCategory][]*TreatmentProtocol),
		byID:       make(map[uuid.UUID]*TreatmentProtocol),
	}
	for i := range seeded {
		p := &seeded[i]
		p.ID = uuid.NewSHA1(protocolNamespace, []byte(p.Name+"/"+p.Version))
		r.byCategory[p.ConditionCategory] = append(r.byCategory[p.ConditionCategory], p)
		r.byID[p.ID] = p
	}
	return r
}

// ByCategory returns the protocols curated for a condition category.
func (r *Registry) ByCategory(category cdesmodels.ConditionCategory) []*TreatmentProtocol {
	return r.byCategory[category]
}

// ByID returns the protocol with the given id, or nil.
func (r *Registry) ByID(id uuid.UUID) *TreatmentProtocol {
	return r.byID[id]
}

// All returns every seeded protocol sorted by name.
func (r *Registry) All() []*TreatmentProtocol {
	out := make([]*TreatmentProtocol, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Categories returns the categories with at least one protocol, sorted.
func (r *Registry) Categories() []cdesmodels.ConditionCategory {
	out := make([]cdesmodels.ConditionCategory, 0, len(r.byCategory))
	for c := range r.byCategory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func route(m cdesmodels.ConsumptionMethod) *cdesmodels.ConsumptionMethod { return &m }

// seeded is the curated protocol set. Proportions are targets, not
// guarantees; dosing text mirrors how providers write instructions.
var seeded = []TreatmentProtocol{
	{
		Name:              "Chronic pain baseline",
		Version:           "1.2",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryChronicPain,
		ICD10Codes:        []string{"G89.4", "M54.5"},
		Description:       "Balanced THC:CBD profile with myrcene and beta-caryophyllene emphasis for persistent non-malignant pain.",
		EvidenceLevel:     "clinical",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"myrcene": 0.5, "beta_caryophyllene": 0.3, "linalool": 0.2},
			CannabinoidTargets: &recommendation.CannabinoidTargets{
				RatioThcCbd: "1:1",
			},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodOralTincture, cdesmodels.MethodOralCapsule,
			},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:                 route(cdesmodels.MethodOralTincture),
			Frequency:             "twice daily",
			DoseLow:               "2.5mg THC / 2.5mg CBD",
			DoseHigh:              "10mg THC / 10mg CBD",
			TitrationInstructions: "Increase by 2.5mg every 3 days until relief or side effects.",
		},
		Contraindications: []string{"pregnancy", "unstable cardiovascular disease"},
		DrugInteractions:  []string{"warfarin", "clobazam"},
		References: []Reference{
			{Title: "NASEM report on the health effects of cannabis", Year: "2017"},
		},
	},
	{
		Name:              "Anxiety low-THC",
		Version:           "1.1",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryAnxiety,
		ICD10Codes:        []string{"F41.1"},
		Description:       "CBD-dominant profile; THC kept minimal to avoid paradoxical anxiogenic response.",
		EvidenceLevel:     "observational",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"linalool": 0.4, "limonene": 0.3, "beta_caryophyllene": 0.3},
			CannabinoidTargets: &recommendation.CannabinoidTargets{
				RatioThcCbd: "1:20",
			},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{cdesmodels.MethodSublingual},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:     route(cdesmodels.MethodSublingual),
			Frequency: "morning and evening",
			DoseLow:   "10mg CBD",
			DoseHigh:  "50mg CBD",
		},
		Contraindications: []string{"history of cannabis-induced panic"},
	},
	{
		Name:              "PTSD nighttime",
		Version:           "1.0",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryPTSD,
		ICD10Codes:        []string{"F43.10"},
		Description:       "Evening-weighted dosing targeting nightmare reduction and sleep continuity.",
		EvidenceLevel:     "observational",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"myrcene": 0.45, "linalool": 0.35, "nerolidol": 0.2},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodOralCapsule, cdesmodels.MethodOralTincture,
			},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:               route(cdesmodels.MethodOralCapsule),
			Frequency:           "one hour before bed",
			DoseLow:             "2.5mg THC",
			DoseHigh:            "7.5mg THC",
			SpecialInstructions: "Avoid morning re-dosing; reassess after two weeks.",
		},
	},
	{
		Name:              "Insomnia sedating profile",
		Version:           "1.3",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryInsomnia,
		ICD10Codes:        []string{"G47.00"},
		Description:       "Myrcene-forward sedating profile for sleep onset and maintenance.",
		EvidenceLevel:     "clinical",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"myrcene": 0.6, "linalool": 0.25, "terpinolene": 0.15},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodOralEdible, cdesmodels.MethodOralTincture,
			},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:     route(cdesmodels.MethodOralEdible),
			Frequency: "45 minutes before bed",
			DoseLow:   "2.5mg THC",
			DoseHigh:  "10mg THC",
			MaxDaily:  "10mg THC",
		},
	},
	{
		Name:              "Chemotherapy nausea rescue",
		Version:           "1.0",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryNausea,
		ICD10Codes:        []string{"R11.0", "T45.1X5A"},
		Description:       "Fast-onset inhaled profile for breakthrough chemotherapy-induced nausea.",
		EvidenceLevel:     "clinical",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"limonene": 0.5, "beta_caryophyllene": 0.5},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodInhalationVape, cdesmodels.MethodSublingual,
			},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:               route(cdesmodels.MethodInhalationVape),
			Frequency:           "as needed, up to four times daily",
			DoseLow:             "one inhalation",
			DoseHigh:            "three inhalations",
			SpecialInstructions: "Use 30 minutes before meals when anticipatory nausea is present.",
		},
		DrugInteractions: []string{"ondansetron (additive QT effects unmonitored)"},
	},
	{
		Name:              "Seizure adjunct high-CBD",
		Version:           "2.0",
		Status:            "active",
		ConditionCategory: cdesmodels.CategorySeizures,
		ICD10Codes:        []string{"G40.909"},
		Description:       "High-CBD adjunct to anticonvulsant therapy; THC avoided.",
		EvidenceLevel:     "rct",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"linalool": 0.5, "beta_caryophyllene": 0.5},
			CannabinoidTargets: &recommendation.CannabinoidTargets{
				RatioThcCbd: "1:50",
			},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{cdesmodels.MethodOralTincture},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:                 route(cdesmodels.MethodOralTincture),
			Frequency:             "twice daily with food",
			DoseLow:               "2.5mg/kg/day CBD",
			DoseHigh:              "10mg/kg/day CBD",
			TitrationInstructions: "Weekly increases; monitor transaminases with valproate.",
		},
		Contraindications: []string{"hepatic impairment"},
		DrugInteractions:  []string{"clobazam", "valproate"},
		References: []Reference{
			{Title: "Devinsky et al., Cannabidiol in Dravet syndrome", Year: "2017"},
		},
	},
	{
		Name:              "Spasticity balanced oromucosal",
		Version:           "1.0",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryMuscleSpasms,
		ICD10Codes:        []string{"M62.40"},
		Description:       "Balanced oromucosal profile modeled on nabiximols dosing for spasticity.",
		EvidenceLevel:     "rct",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"beta_caryophyllene": 0.6, "myrcene": 0.4},
			CannabinoidTargets: &recommendation.CannabinoidTargets{
				RatioThcCbd: "1:1",
			},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{cdesmodels.MethodSublingual},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:     route(cdesmodels.MethodSublingual),
			Frequency: "up to four sprays daily",
			DoseLow:   "one spray",
			DoseHigh:  "four sprays",
			MaxDaily:  "twelve sprays",
		},
	},
	{
		Name:              "Appetite support",
		Version:           "1.0",
		Status:            "active",
		ConditionCategory: cdesmodels.CategoryAppetiteLoss,
		ICD10Codes:        []string{"R63.0"},
		Description:       "Low-dose THC-forward profile for appetite stimulation in wasting conditions.",
		EvidenceLevel:     "observational",
		RecommendedProfile: recommendation.TargetProfile{
			TerpeneProfile: map[string]float64{"myrcene": 0.4, "limonene": 0.6},
			ConsumptionMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodOralTincture, cdesmodels.MethodOralEdible,
			},
		},
		DosingGuidance: &recommendation.DosingGuidance{
			Route:               route(cdesmodels.MethodOralTincture),
			Frequency:           "one hour before main meal",
			DoseLow:             "1mg THC",
			DoseHigh:            "5mg THC",
			SpecialInstructions: "Pair with scheduled meal times.",
		},
	},
}
