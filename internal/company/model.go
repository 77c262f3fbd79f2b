package company

import "time"

type Company struct {
	ID        uint
	OwnerID   uint
	Name      string
	Slug      string
	Domain    *string
	Phone     string
	Address   string
	City      string
	State     string
	Active    bool
	CreatedAt time.Time
}

type CreateInput struct {
	Name    string  `json:"name"`
	Domain  *string `json:"domain,omitempty"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
}

type UpdateInput struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
}

// DomainCheck is the result of verifying a custom domain's DNS records.
type DomainCheck struct {
	Domain     string   `json:"domain"`
	OK         bool     `json:"ok"`
	Message    string   `json:"message"`
	ResolvedTo []string `json:"resolved_to,omitempty"`
	ExpectedIP string   `json:"expected_ip"`
}
