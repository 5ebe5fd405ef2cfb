package domain

// Division is a top-level administrative area. Reference data only;
// written by the seed command, read-only through the API.
type Division struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// District belongs to a Division via DivisionID.
type District struct {
	ID         string `bson:"id" json:"id"`
	DivisionID string `bson:"divisionId" json:"divisionId"`
	Name       string `bson:"name" json:"name"`
}
