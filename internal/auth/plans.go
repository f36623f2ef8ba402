package auth

// Plan is a subscription tier.
type Plan string

const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanClinic Plan = "clinic"
)

// Feature is a plan-gated capability.
type Feature string

const (
	// FeatureSurveillance gates the analyze operation.
	FeatureSurveillance Feature = "surveillance"
	// FeaturePDFExport gates PDF report generation.
	FeaturePDFExport Feature = "pdf_export"
)

// planFeatures is the static entitlement table. Unknown plans have no
// entitlements.
var planFeatures = map[Plan]map[Feature]bool{
	PlanFree: {},
	PlanPro: {
		FeatureSurveillance: true,
	},
	PlanClinic: {
		FeatureSurveillance: true,
		FeaturePDFExport:    true,
	},
}

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	_, ok := planFeatures[p]
	return ok
}

// Allows reports whether the plan is entitled to the feature.
func (p Plan) Allows(f Feature) bool {
	return planFeatures[p][f]
}
