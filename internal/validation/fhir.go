package validation

// FHIR checks are closed-set membership tests only; full schema validation
// is out of scope.

var fhirResourceTypes = map[string]struct{}{
	"Observation":  {},
	"Patient":      {},
	"Bundle":       {},
	"Practitioner": {},
	"Organization": {},
}

var fhirCodingSystems = map[string]struct{}{
	"http://loinc.org":          {},
	"http://snomed.info/sct":    {},
	"http://unitsofmeasure.org": {},
	"http://terminology.hl7.org/CodeSystem/observation-category":         {},
	"http://terminology.hl7.org/CodeSystem/v3-ObservationInterpretation": {},
}

var observationStatuses = map[string]struct{}{
	"registered":       {},
	"preliminary":      {},
	"final":            {},
	"amended":          {},
	"corrected":        {},
	"cancelled":        {},
	"entered-in-error": {},
	"unknown":          {},
}

// ValidateFHIRResourceType checks membership in the supported resource types.
func ValidateFHIRResourceType(resourceType string) error {
	if _, ok := fhirResourceTypes[resourceType]; !ok {
		return newError(InvalidFHIR, "invalid FHIR resource type: %s", resourceType)
	}
	return nil
}

// ValidateFHIRCodingSystem checks membership in the supported coding system URLs.
func ValidateFHIRCodingSystem(system string) error {
	if _, ok := fhirCodingSystems[system]; !ok {
		return newError(InvalidFHIR, "invalid or unsupported FHIR coding system: %s", system)
	}
	return nil
}

// ValidateObservationStatus checks membership in the FHIR observation status set.
func ValidateObservationStatus(status string) error {
	if _, ok := observationStatuses[status]; !ok {
		return newError(InvalidFHIR, "invalid observation status: %s", status)
	}
	return nil
}
