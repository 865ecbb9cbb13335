package normalize

import (
	"strings"

	"calltime-backend/internal/database/models"
)

// donorTypeAliases maps normalized category labels to donor types.
var donorTypeAliases = map[string]models.DonorType{
	"individual": models.DonorTypeIndividual,
	"person":     models.DonorTypeIndividual,
	"donor":      models.DonorTypeIndividual,
	"household":  models.DonorTypeIndividual,
	"family":     models.DonorTypeIndividual,

	"business":     models.DonorTypeBusiness,
	"company":      models.DonorTypeBusiness,
	"corp":         models.DonorTypeBusiness,
	"corporation":  models.DonorTypeBusiness,
	"llc":          models.DonorTypeBusiness,
	"org":          models.DonorTypeBusiness,
	"organization": models.DonorTypeBusiness,
	"employer":     models.DonorTypeBusiness,
	"union":        models.DonorTypeBusiness,

	"campaign":  models.DonorTypeCampaign,
	"pac":       models.DonorTypeCampaign,
	"committee": models.DonorTypeCampaign,
	"candidate": models.DonorTypeCampaign,
	"party":     models.DonorTypeCampaign,
	"caucus":    models.DonorTypeCampaign,
}

// ResolveDonorType maps a raw category value, or failing that the legacy
// business boolean, into a donor type. Ambiguous input defaults to individual.
func ResolveDonorType(value string, isBusiness *bool) models.DonorType {
	if t, ok := donorTypeAliases[NormalizeColumnName(strings.TrimSpace(value))]; ok {
		return t
	}
	if isBusiness != nil && *isBusiness {
		return models.DonorTypeBusiness
	}
	return models.DonorTypeIndividual
}
