package models

// Station is a seismographic station. A station may own several seismographs
// but only the first one is actively monitored by the closure workflow.
type Station struct {
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Latitude     float64        `json:"latitude,omitempty"`
	Longitude    float64        `json:"longitude,omitempty"`
	Seismographs []*Seismograph `json:"seismographs,omitempty"`
}

// ActiveSeismograph returns the monitored seismograph, or nil when the
// station has none attached.
func (st *Station) ActiveSeismograph() *Seismograph {
	if st == nil || len(st.Seismographs) == 0 {
		return nil
	}
	return st.Seismographs[0]
}
