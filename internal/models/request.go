package models

import (
	"time"

	"gorm.io/datatypes"
)

// Request lifecycle statuses. Status stays a plain string because admins can
// assign labels beyond these (e.g. "archived"); only these three are counted
// in the dashboard stats.
const (
	StatusNew       = "new"
	StatusQuoted    = "quoted"
	StatusCompleted = "completed"
)

// PartSelection is one catalog part the customer picked while filling the
// request form. It is decoded from the form payload once at the boundary and
// persisted as JSON by the storage backend.
type PartSelection struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PartRequest is one customer's part inquiry, the primary record of the
// system. Column sizes and defaults mirror the customer_requests table.
type PartRequest struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Date string `gorm:"size:20" json:"date"`
	Time string `gorm:"size:20" json:"time"`

	CustomerName  string `gorm:"size:255" json:"customer_name"`
	CustomerPhone string `gorm:"size:50" json:"customer_phone"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`

	VehicleYear       string `gorm:"size:10" json:"vehicle_year"`
	VehicleMake       string `gorm:"size:100" json:"vehicle_make"`
	VehicleModel      string `gorm:"size:100" json:"vehicle_model"`
	VehicleColor      string `gorm:"size:50" json:"vehicle_color"`
	ColorDoesntMatter bool   `gorm:"default:false" json:"color_doesnt_matter"`
	CompatibleModels  string `gorm:"type:text" json:"compatible_models"`

	PypLocation string `gorm:"size:255" json:"pyp_location"`
	Mileage     int    `gorm:"default:0" json:"mileage"`

	PartNeeded    string                             `gorm:"type:text" json:"part_needed"`
	PartSize      string                             `gorm:"size:10" json:"part_size"`
	JunkyardParts datatypes.JSONSlice[PartSelection] `json:"junkyard_parts"`
	PartImages    datatypes.JSONSlice[string]        `json:"part_images"`

	AdditionalNotes string `gorm:"type:text" json:"additional_notes"`
	SecureMethod    string `gorm:"size:50" json:"secure_method"`
	Warranty        bool   `gorm:"default:false" json:"warranty"`
	WantsWarranty   bool   `gorm:"default:false" json:"wants_warranty"`
	Language        string `gorm:"size:10;default:'en'" json:"language"`

	Status          string  `gorm:"size:50;default:'new'" json:"status"`
	QuoteAmount     float64 `gorm:"type:decimal(10,2);default:0" json:"quote_amount"`
	QuoteMessage    string  `gorm:"type:text" json:"quote_message"`
	DepositAmount   string  `gorm:"size:10;default:'0'" json:"deposit_amount"`
	DepositRequired bool    `gorm:"default:true" json:"deposit_required"`
	DepositPaid     bool    `gorm:"default:false" json:"deposit_paid"`
	PhotosSent      bool    `gorm:"default:false" json:"photos_sent"`
	ResponseMessage string  `gorm:"type:text" json:"response_message"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// TableName keeps the table name of the original deployment.
func (PartRequest) TableName() string { return "customer_requests" }

func (r *PartRequest) IsNew() bool       { return r.Status == StatusNew }
func (r *PartRequest) IsQuoted() bool    { return r.Status == StatusQuoted }
func (r *PartRequest) IsCompleted() bool { return r.Status == StatusCompleted }

// HasQuote reports whether an admin has priced this request.
func (r *PartRequest) HasQuote() bool {
	return r.QuoteAmount > 0 || r.QuoteMessage != ""
}

// VehicleLabel renders "2008 Honda Civic" style labels for admin views.
func (r *PartRequest) VehicleLabel() string {
	label := r.VehicleYear
	for _, part := range []string{r.VehicleMake, r.VehicleModel} {
		if part == "" {
			continue
		}
		if label != "" {
			label += " "
		}
		label += part
	}
	return label
}

// RequestPatch is a partial update applied by the admin panel. Only non-nil
// fields are written. There is deliberately no ID field: the identifier is
// immutable once assigned, so an "id" key in the payload is dropped when
// decoding into this struct.
type RequestPatch struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email"`

	VehicleYear       *string `json:"vehicle_year"`
	VehicleMake       *string `json:"vehicle_make"`
	VehicleModel      *string `json:"vehicle_model"`
	VehicleColor      *string `json:"vehicle_color"`
	ColorDoesntMatter *bool   `json:"color_doesnt_matter"`
	CompatibleModels  *string `json:"compatible_models"`

	PypLocation *string `json:"pyp_location"`
	Mileage     *int    `json:"mileage"`

	PartNeeded    *string          `json:"part_needed"`
	PartSize      *string          `json:"part_size"`
	JunkyardParts *[]PartSelection `json:"junkyard_parts"`
	PartImages    *[]string        `json:"part_images"`

	AdditionalNotes *string `json:"additional_notes"`
	SecureMethod    *string `json:"secure_method"`
	Warranty        *bool   `json:"warranty"`
	WantsWarranty   *bool   `json:"wants_warranty"`
	Language        *string `json:"language"`

	Status          *string  `json:"status"`
	QuoteAmount     *float64 `json:"quote_amount"`
	QuoteMessage    *string  `json:"quote_message"`
	DepositAmount   *string  `json:"deposit_amount"`
	DepositRequired *bool    `json:"deposit_required"`
	DepositPaid     *bool    `json:"deposit_paid"`
	PhotosSent      *bool    `json:"photos_sent"`
	ResponseMessage *string  `json:"response_message"`
}

// Apply writes every provided field onto the request. Each field is a full
// replacement, lists included; nothing is merged.
func (p *RequestPatch) Apply(r *PartRequest) {
	if p.CustomerName != nil {
		r.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		r.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerEmail != nil {
		r.CustomerEmail = *p.CustomerEmail
	}
	if p.VehicleYear != nil {
		r.VehicleYear = *p.VehicleYear
	}
	if p.VehicleMake != nil {
		r.VehicleMake = *p.VehicleMake
	}
	if p.VehicleModel != nil {
		r.VehicleModel = *p.VehicleModel
	}
	if p.VehicleColor != nil {
		r.VehicleColor = *p.VehicleColor
	}
	if p.ColorDoesntMatter != nil {
		r.ColorDoesntMatter = *p.ColorDoesntMatter
	}
	if p.CompatibleModels != nil {
		r.CompatibleModels = *p.CompatibleModels
	}
	if p.PypLocation != nil {
		r.PypLocation = *p.PypLocation
	}
	if p.Mileage != nil {
		r.Mileage = *p.Mileage
	}
	if p.PartNeeded != nil {
		r.PartNeeded = *p.PartNeeded
	}
	if p.PartSize != nil {
		r.PartSize = *p.PartSize
	}
	if p.JunkyardParts != nil {
		r.JunkyardParts = datatypes.NewJSONSlice(*p.JunkyardParts)
	}
	if p.PartImages != nil {
		r.PartImages = datatypes.NewJSONSlice(*p.PartImages)
	}
	if p.AdditionalNotes != nil {
		r.AdditionalNotes = *p.AdditionalNotes
	}
	if p.SecureMethod != nil {
		r.SecureMethod = *p.SecureMethod
	}
	if p.Warranty != nil {
		r.Warranty = *p.Warranty
	}
	if p.WantsWarranty != nil {
		r.WantsWarranty = *p.WantsWarranty
	}
	if p.Language != nil {
		r.Language = *p.Language
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.QuoteAmount != nil {
		r.QuoteAmount = *p.QuoteAmount
	}
	if p.QuoteMessage != nil {
		r.QuoteMessage = *p.QuoteMessage
	}
	if p.DepositAmount != nil {
		r.DepositAmount = *p.DepositAmount
	}
	if p.DepositRequired != nil {
		r.DepositRequired = *p.DepositRequired
	}
	if p.DepositPaid != nil {
		r.DepositPaid = *p.DepositPaid
	}
	if p.PhotosSent != nil {
		r.PhotosSent = *p.PhotosSent
	}
	if p.ResponseMessage != nil {
		r.ResponseMessage = *p.ResponseMessage
	}
}

// RequestStats are the admin dashboard counters. A request whose status is
// outside the three named buckets still counts toward Total.
type RequestStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Quoted    int64 `json:"quoted"`
	Completed int64 `json:"completed"`
}
