// Package reconcile compares a document-derived field set against the
// authoritative DJP record and classifies every disagreement. It is pure:
// it always returns a result and depends on nothing but the shared field
// schema.
package reconcile

import (
	"fmt"

	"github.com/wisnuaga/e-faktur/internal/model"
)

// Reconcile compares the two records field by field, in the fixed field
// order, under exact post-normalization equality. Deviations keep field
// declaration order; they are never sorted by severity.
func Reconcile(document, reference model.InvoiceFieldSet) model.ReconciliationResult {
	docFields := document.Fields()
	refFields := reference.Fields()

	var deviations []model.Deviation
	for i := range docFields {
		doc, ref := docFields[i], refFields[i]

		kind, deviates := classify(doc, ref)
		if !deviates {
			continue
		}
		deviations = append(deviations, model.Deviation{
			Field:          doc.Name,
			DocumentValue:  doc.Value,
			ReferenceValue: ref.Value,
			Kind:           kind,
		})
	}

	result := model.ReconciliationResult{
		Deviations:    deviations,
		ReferenceData: reference,
	}
	if len(deviations) == 0 {
		result.Status = model.StatusValidated
		result.Message = "Validation complete"
	} else {
		result.Status = model.StatusWithDeviations
		result.Message = fmt.Sprintf("Found %d deviation(s)", len(deviations))
	}
	return result
}

func classify(doc, ref model.FieldValue) (model.DeviationKind, bool) {
	switch {
	case !doc.Present && !ref.Present:
		return "", false
	case !doc.Present:
		return model.KindMissingInDocument, true
	case !ref.Present:
		return model.KindMissingInReference, true
	case doc.Value != ref.Value:
		return model.KindMismatch, true
	default:
		return "", false
	}
}
