package change_pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
)

// Validate runs the action's validator and persists the outcome: on failure
// the ordered error list is written under data["invalid_fields"] and the
// change stays unvalidated; on success any stale error list is removed and
// validated flips to true. Each run rebuilds the list from scratch, so
// re-validation is idempotent.
func (p *ChangePipeline) Validate(ctx context.Context, change models.Change) (bool, error) {
	logger := utils.LoggerFromContext(ctx)

	validator, ok := p.validators[change.Action]
	if !ok {
		return false, errors.Wrap(models.ErrUnknownChangeAction,
			fmt.Sprintf("no validator registered for action '%s'", change.Action))
	}
	if change.Data == nil {
		return false, errors.Wrap(models.ErrChangeDataNotAnObject,
			fmt.Sprintf("change %s has no data object", change.Id))
	}

	invalidFields := validator(change)

	data := maps.Clone(change.Data)
	if len(invalidFields) > 0 {
		data[models.InvalidFieldsKey] = invalidFields
	} else {
		delete(data, models.InvalidFieldsKey)
	}

	err := p.changeRepository.UpdateChange(ctx, p.executorFactory.NewExecutor(),
		models.UpdateChangeInput{
			Id:        change.Id,
			Data:      data,
			Validated: len(invalidFields) == 0,
		})
	if err != nil {
		return false, err
	}

	if len(invalidFields) > 0 {
		logger.InfoContext(ctx, "change validation failed",
			"change_id", change.Id.String(),
			"action", string(change.Action),
			"invalid_fields", invalidFields)
		changesValidatedCounter.WithLabelValues(string(change.Action), "invalid").Inc()
		return false, nil
	}

	changesValidatedCounter.WithLabelValues(string(change.Action), "valid").Inc()
	return true, nil
}

// payloadFields lists the submitted payload keys, ignoring the error list a
// previous failed validation may have stored alongside them.
func payloadFields(data map[string]any) []string {
	fields := make([]string, 0, len(data))
	for key := range data {
		if key == models.InvalidFieldsKey {
			continue
		}
		fields = append(fields, key)
	}
	slices.Sort(fields)
	return fields
}

func stringField(data map[string]any, key string) (string, bool) {
	raw, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

func validateRegistrantId(change models.Change, errs []string) []string {
	if !IsValidUUID(change.RegistrantId) {
		errs = append(errs, "Invalid UUID registrant_id")
	}
	return errs
}

func validateBabySwitch(change models.Change) []string {
	return validateRegistrantId(change, nil)
}

func validateReason(change models.Change, allowed []string, invalidMessage string,
	errs []string,
) []string {
	reason, ok := stringField(change.Data, "reason")
	switch {
	case !ok:
		errs = append(errs, "Optout reason is missing")
	case !isReasonIn(reason, allowed):
		errs = append(errs, invalidMessage)
	}
	return errs
}

func validatePmtctLoss(change models.Change) []string {
	errs := validateRegistrantId(change, nil)
	return validateReason(change, models.LossReasons, "Not a valid loss reason", errs)
}

func validatePmtctNonlossOptout(change models.Change) []string {
	errs := validateRegistrantId(change, nil)
	return validateReason(change, models.NonlossReasons, "Not a valid nonloss reason", errs)
}

// The recognized single-field detail updates. An id-document bundle is
// recognized by the presence of id_type instead.
var singleDetailFields = []string{"faccode", "sanc_no", "persal_no", "msisdn"}

func validateNurseUpdateDetail(change models.Change) []string {
	errs := validateRegistrantId(change, nil)
	fields := payloadFields(change.Data)

	switch {
	case slices.Contains(fields, "id_type"):
		idType, _ := stringField(change.Data, "id_type")
		errs = append(errs, validateIdentityDocument(idType, fields)...)

	case len(fields) == 1:
		field := fields[0]
		if !slices.Contains(singleDetailFields, field) {
			errs = append(errs, "Could not parse detail update request")
			break
		}
		if field == "faccode" {
			if faccode, ok := stringField(change.Data, "faccode"); !ok || !IsValidFaccode(faccode) {
				errs = append(errs, "Faccode invalid")
			}
		}

	case len(fields) == 0:
		errs = append(errs, "Could not parse detail update request")

	default:
		errs = append(errs, "Only one detail update can be submitted per Change")
	}

	return errs
}

func validateNurseChangeMsisdn(change models.Change) []string {
	errs := validateRegistrantId(change, nil)

	msisdnOld, _ := stringField(change.Data, "msisdn_old")
	msisdnNew, _ := stringField(change.Data, "msisdn_new")
	msisdnDevice, _ := stringField(change.Data, "msisdn_device")

	device := NormalizeMsisdn(msisdnDevice)
	if device != NormalizeMsisdn(msisdnOld) && device != NormalizeMsisdn(msisdnNew) {
		errs = append(errs, "Device msisdn should be the same as new or old msisdn")
	}
	return errs
}

func validateNurseOptout(change models.Change) []string {
	errs := validateRegistrantId(change, nil)
	reason, _ := stringField(change.Data, "reason")
	if !isReasonIn(reason, models.NurseOptoutReasons) {
		errs = append(errs, "Not a valid optout reason")
	}
	return errs
}
