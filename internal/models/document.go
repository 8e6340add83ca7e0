package models

// Document is a loosely-typed record as stored in a collection.
type Document map[string]any

// Raw field names written by the importer and read by the loader.
const (
	FieldTimestamp     = "timestamp"
	FieldDistance      = "distance"
	FieldAvgPace       = "avg_pace"
	FieldElevationGain = "elevation_gain"
	FieldElevationLoss = "elevation_loss"
	FieldShoes         = "shoes"
	FieldCalories      = "calories"
	FieldActivityType  = "activity_type"
)

// Project returns a copy of d holding only the named fields that are present.
func (d Document) Project(fields []string) Document {
	if len(fields) == 0 {
		out := make(Document, len(d))
		for k, v := range d {
			out[k] = v
		}
		return out
	}

	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}
