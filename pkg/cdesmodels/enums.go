// Package cdesmodels holds the closed CDES-M value sets shared across the
// domain packages, plus the two error kinds every layer reports with.
// Each enumeration is a typed string with a Parse function that rejects
// values outside the set, so unknown codes never get past construction.
package cdesmodels

// LicenseType classifies a provider license.
type LicenseType string

const (
	LicenseMD         LicenseType = "md"
	LicenseDO         LicenseType = "do"
	LicenseNP         LicenseType = "np"
	LicensePA         LicenseType = "pa"
	LicenseAPRN       LicenseType = "aprn"
	LicensePharmacist LicenseType = "pharmacist"
	LicenseOther      LicenseType = "other"
)

var licenseTypes = map[LicenseType]bool{
	LicenseMD: true, LicenseDO: true, LicenseNP: true, LicensePA: true,
	LicenseAPRN: true, LicensePharmacist: true, LicenseOther: true,
}

func (t LicenseType) Valid() bool { return licenseTypes[t] }

func ParseLicenseType(s string) (LicenseType, error) {
	t := LicenseType(s)
	if !t.Valid() {
		return "", NewValidationError("license_type", "unknown license type: "+s)
	}
	return t, nil
}

// ConsumptionMethod is a cannabis administration route.
type ConsumptionMethod string

const (
	MethodInhalationSmoke ConsumptionMethod = "inhalation_smoke"
	MethodInhalationVape  ConsumptionMethod = "inhalation_vape"
	MethodOralEdible      ConsumptionMethod = "oral_edible"
	MethodOralTincture    ConsumptionMethod = "oral_tincture"
	MethodOralCapsule     ConsumptionMethod = "oral_capsule"
	MethodSublingual      ConsumptionMethod = "sublingual"
	MethodTopical         ConsumptionMethod = "topical"
	MethodTransdermal     ConsumptionMethod = "transdermal"
	MethodSuppository     ConsumptionMethod = "suppository"
)

var consumptionMethods = map[ConsumptionMethod]bool{
	MethodInhalationSmoke: true, MethodInhalationVape: true,
	MethodOralEdible: true, MethodOralTincture: true, MethodOralCapsule: true,
	MethodSublingual: true, MethodTopical: true, MethodTransdermal: true,
	MethodSuppository: true,
}

func (m ConsumptionMethod) Valid() bool { return consumptionMethods[m] }

func ParseConsumptionMethod(s string) (ConsumptionMethod, error) {
	m := ConsumptionMethod(s)
	if !m.Valid() {
		return "", NewValidationError("consumption_method", "unknown consumption method: "+s)
	}
	return m, nil
}

// RecommendationStatus values align with FHIR MedicationRequest.status.
type RecommendationStatus string

const (
	StatusDraft          RecommendationStatus = "draft"
	StatusActive         RecommendationStatus = "active"
	StatusCompleted      RecommendationStatus = "completed"
	StatusCancelled      RecommendationStatus = "cancelled"
	StatusEnteredInError RecommendationStatus = "entered_in_error"
)

var recommendationStatuses = map[RecommendationStatus]bool{
	StatusDraft: true, StatusActive: true, StatusCompleted: true,
	StatusCancelled: true, StatusEnteredInError: true,
}

func (s RecommendationStatus) Valid() bool { return recommendationStatuses[s] }

func ParseRecommendationStatus(s string) (RecommendationStatus, error) {
	st := RecommendationStatus(s)
	if !st.Valid() {
		return "", NewValidationError("status", "unknown recommendation status: "+s)
	}
	return st, nil
}

// RecommendationIntent values align with FHIR request intent.
type RecommendationIntent string

const (
	IntentProposal RecommendationIntent = "proposal"
	IntentPlan     RecommendationIntent = "plan"
	IntentOrder    RecommendationIntent = "order"
)

var recommendationIntents = map[RecommendationIntent]bool{
	IntentProposal: true, IntentPlan: true, IntentOrder: true,
}

func (i RecommendationIntent) Valid() bool { return recommendationIntents[i] }

func ParseRecommendationIntent(s string) (RecommendationIntent, error) {
	in := RecommendationIntent(s)
	if !in.Valid() {
		return "", NewValidationError("intent", "unknown recommendation intent: "+s)
	}
	return in, nil
}

// ConditionCategory groups qualifying MMJ conditions.
type ConditionCategory string

const (
	CategoryChronicPain  ConditionCategory = "chronic_pain"
	CategoryAnxiety      ConditionCategory = "anxiety"
	CategoryPTSD         ConditionCategory = "ptsd"
	CategoryInsomnia     ConditionCategory = "insomnia"
	CategoryNausea       ConditionCategory = "nausea"
	CategorySeizures     ConditionCategory = "seizures"
	CategoryMuscleSpasms ConditionCategory = "muscle_spasms"
	CategoryAppetiteLoss ConditionCategory = "appetite_loss"
	CategoryGlaucoma     ConditionCategory = "glaucoma"
	CategoryCancer       ConditionCategory = "cancer"
	CategoryHIVAIDS      ConditionCategory = "hiv_aids"
	CategoryCrohns       ConditionCategory = "crohns"
	CategoryParkinsons   ConditionCategory = "parkinsons"
	CategoryMS           ConditionCategory = "ms"
	CategoryALS          ConditionCategory = "als"
	CategoryOther        ConditionCategory = "other"
)

var conditionCategories = map[ConditionCategory]bool{
	CategoryChronicPain: true, CategoryAnxiety: true, CategoryPTSD: true,
	CategoryInsomnia: true, CategoryNausea: true, CategorySeizures: true,
	CategoryMuscleSpasms: true, CategoryAppetiteLoss: true,
	CategoryGlaucoma: true, CategoryCancer: true, CategoryHIVAIDS: true,
	CategoryCrohns: true, CategoryParkinsons: true, CategoryMS: true,
	CategoryALS: true, CategoryOther: true,
}

func (c ConditionCategory) Valid() bool { return conditionCategories[c] }

func ParseConditionCategory(s string) (ConditionCategory, error) {
	c := ConditionCategory(s)
	if !c.Valid() {
		return "", NewValidationError("category", "unknown condition category: "+s)
	}
	return c, nil
}

// ExperienceLevel describes prior cannabis experience.
type ExperienceLevel string

const (
	ExperienceNaive       ExperienceLevel = "naive"
	ExperienceNovice      ExperienceLevel = "novice"
	ExperienceModerate    ExperienceLevel = "moderate"
	ExperienceExperienced ExperienceLevel = "experienced"
)

var experienceLevels = map[ExperienceLevel]bool{
	ExperienceNaive: true, ExperienceNovice: true,
	ExperienceModerate: true, ExperienceExperienced: true,
}

func (e ExperienceLevel) Valid() bool { return experienceLevels[e] }

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	e := ExperienceLevel(s)
	if !e.Valid() {
		return "", NewValidationError("experience_level", "unknown experience level: "+s)
	}
	return e, nil
}

// ThcTolerance describes patient THC tolerance.
type ThcTolerance string

const (
	ToleranceLow      ThcTolerance = "low"
	ToleranceModerate ThcTolerance = "moderate"
	ToleranceHigh     ThcTolerance = "high"
)

var thcTolerances = map[ThcTolerance]bool{
	ToleranceLow: true, ToleranceModerate: true, ToleranceHigh: true,
}

func (t ThcTolerance) Valid() bool { return thcTolerances[t] }

func ParseThcTolerance(s string) (ThcTolerance, error) {
	t := ThcTolerance(s)
	if !t.Valid() {
		return "", NewValidationError("thc_tolerance", "unknown THC tolerance: "+s)
	}
	return t, nil
}

// SideEffect is a commonly reported cannabis side effect.
type SideEffect string

const (
	SideEffectDryMouth          SideEffect = "dry_mouth"
	SideEffectRedEyes           SideEffect = "red_eyes"
	SideEffectDrowsiness        SideEffect = "drowsiness"
	SideEffectAnxiety           SideEffect = "anxiety"
	SideEffectParanoia          SideEffect = "paranoia"
	SideEffectDizziness         SideEffect = "dizziness"
	SideEffectHeadache          SideEffect = "headache"
	SideEffectNausea            SideEffect = "nausea"
	SideEffectIncreasedAppetite SideEffect = "increased_appetite"
	SideEffectOther             SideEffect = "other"
)

var sideEffects = map[SideEffect]bool{
	SideEffectDryMouth: true, SideEffectRedEyes: true,
	SideEffectDrowsiness: true, SideEffectAnxiety: true,
	SideEffectParanoia: true, SideEffectDizziness: true,
	SideEffectHeadache: true, SideEffectNausea: true,
	SideEffectIncreasedAppetite: true, SideEffectOther: true,
}

func (s SideEffect) Valid() bool { return sideEffects[s] }

func ParseSideEffect(s string) (SideEffect, error) {
	e := SideEffect(s)
	if !e.Valid() {
		return "", NewValidationError("effect", "unknown side effect: "+s)
	}
	return e, nil
}

// Severity grades a condition or side effect.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

var severities = map[Severity]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

func (s Severity) Valid() bool { return severities[s] }

func ParseSeverity(s string) (Severity, error) {
	sv := Severity(s)
	if !sv.Valid() {
		return "", NewValidationError("severity", "unknown severity: "+s)
	}
	return sv, nil
}

// MessagePriority ranks a secure message, mirroring the FHIR
// request-priority codes.
type MessagePriority string

const (
	PriorityRoutine MessagePriority = "routine"
	PriorityUrgent  MessagePriority = "urgent"
	PriorityASAP    MessagePriority = "asap"
	PriorityStat    MessagePriority = "stat"
)

var messagePriorities = map[MessagePriority]bool{
	PriorityRoutine: true, PriorityUrgent: true, PriorityASAP: true,
	PriorityStat: true,
}

func (p MessagePriority) Valid() bool { return messagePriorities[p] }

func ParseMessagePriority(s string) (MessagePriority, error) {
	p := MessagePriority(s)
	if !p.Valid() {
		return "", NewValidationError("priority", "unknown message priority: "+s)
	}
	return p, nil
}

// MessageStatus tracks secure-message delivery.
type MessageStatus string

const (
	MessageSent MessageStatus = "sent"
	MessageRead MessageStatus = "read"
)

var messageStatuses = map[MessageStatus]bool{
	MessageSent: true, MessageRead: true,
}

func (s MessageStatus) Valid() bool { return messageStatuses[s] }

func ParseMessageStatus(s string) (MessageStatus, error) {
	ms := MessageStatus(s)
	if !ms.Valid() {
		return "", NewValidationError("status", "unknown message status: "+s)
	}
	return ms, nil
}

// ParticipantType identifies which record a message endpoint refers to.
type ParticipantType string

const (
	ParticipantProvider ParticipantType = "provider"
	ParticipantPatient  ParticipantType = "patient"
)

var participantTypes = map[ParticipantType]bool{
	ParticipantProvider: true, ParticipantPatient: true,
}

func (t ParticipantType) Valid() bool { return participantTypes[t] }

func ParseParticipantType(s string) (ParticipantType, error) {
	pt := ParticipantType(s)
	if !pt.Valid() {
		return "", NewValidationError("participant_type", "unknown participant type: "+s)
	}
	return pt, nil
}
