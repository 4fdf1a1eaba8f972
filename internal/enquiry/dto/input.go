package dto

type CreateEnquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	// StoreName optionally links the enquiry to a store id.
	StoreName string `json:"storeName"`
	Status    string `json:"status"`
}

// UpdateEnquiryInput decodes a partial JSON body; absent keys stay nil.
// An empty storeName unlinks the store.
type UpdateEnquiryInput struct {
	ID string `json:"-"`

	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Subject   *string `json:"subject"`
	Message   *string `json:"message"`
	StoreName *string `json:"storeName"`
	Status    *string `json:"status"`
}
