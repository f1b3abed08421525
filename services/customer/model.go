package customer

import "time"

// Profile holds what checkout and the profile screen need. Authentication
// itself is handled by the hosted identity service; the profile uid equals
// the authenticated session uid.
type Profile struct {
	UID                string
	FullName           string
	EmailAddress       string
	PhoneNumber        string
	DeliveryAddress    string
	DietaryPreferences []string
	Allergies          []string
	CalorieGoal        int
	CreatedAt          time.Time
	LastModified       *time.Time
}

func (p Profile) HasDeliveryAddress() bool {
	return p.DeliveryAddress != ""
}
