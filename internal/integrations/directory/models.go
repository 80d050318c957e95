package directory

// Dog is the directory's view of an animal. Only identity and tenant
// ownership matter to this service; everything else is display data.
type Dog struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	OwnerID  int64  `json:"owner_id"`
	Name     string `json:"name"`
	Breed    string `json:"breed"`
}
