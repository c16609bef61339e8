package models

// Lead represents a sales prospect owned by one user
type Lead struct {
	ID                 string    `json:"id"`
	CreatedAt          Timestamp `json:"created_at"`
	UserUUID           string    `json:"user_uuid"`
	LeadID             string    `json:"lead_id"`
	LeadName           string    `json:"lead_name"`
	ContactInformation string    `json:"contact_information"`
	Source             string    `json:"source"`
	InterestLevel      string    `json:"interest_level"`
	Status             string    `json:"status"`
	Salesperson        string    `json:"salesperson"`
}

// CSV header names expected in an uploaded lead file
const (
	ColumnLeadID             = "Lead ID"
	ColumnLeadName           = "Lead Name"
	ColumnContactInformation = "Contact Information"
	ColumnSource             = "Source"
	ColumnInterestLevel      = "Interest Level"
	ColumnStatus             = "Status"
	ColumnSalesperson        = "Assigned Salesperson"
)

// LeadColumns lists the required CSV columns in file order
var LeadColumns = []string{
	ColumnLeadID,
	ColumnLeadName,
	ColumnContactInformation,
	ColumnSource,
	ColumnInterestLevel,
	ColumnStatus,
	ColumnSalesperson,
}

// LeadFilterFields lists the lead columns that can be used as query filters
var LeadFilterFields = []string{
	"lead_id",
	"lead_name",
	"contact_information",
	"source",
	"interest_level",
	"status",
	"salesperson",
}

// LeadFilter maps a filterable lead column to the value it must equal.
// Empty values are ignored.
type LeadFilter map[string]string

// NewLeadFilter builds a filter from a lookup function (e.g. a query string getter),
// keeping only known fields with non-empty values
func NewLeadFilter(get func(field string) string) LeadFilter {
	filter := make(LeadFilter)
	for _, field := range LeadFilterFields {
		if value := get(field); value != "" {
			filter[field] = value
		}
	}
	return filter
}
