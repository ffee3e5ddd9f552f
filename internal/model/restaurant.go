package model

// Address is the postal address embedded in a restaurant record.
type Address struct {
	Building string `json:"building,omitempty" bson:"building,omitempty"`
	Street   string `json:"street,omitempty" bson:"street,omitempty"`
	Zipcode  string `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
}

// Restaurant is a single record of the restaurants collection.
// Field names match the stored document so projected results omit what was not selected.
// ID is the store-assigned _id rendered as a hex string; it is empty when projected out.
type Restaurant struct {
	ID           string   `json:"_id,omitempty" bson:"_id,omitempty"`
	RestaurantID string   `json:"restaurant_id,omitempty" bson:"restaurant_id,omitempty"`
	Name         string   `json:"name,omitempty" bson:"name,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	City         string   `json:"city,omitempty" bson:"city,omitempty"`
	Address      *Address `json:"address,omitempty" bson:"address,omitempty"`
}
