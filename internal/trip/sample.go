package trip

import "github.com/jbonatakis/cabinlog/internal/catalog"

// SampleTrip is the demonstration record shown when nothing usable is stored yet.
func SampleTrip() Trip {
	return Trip{
		ID:         "sample-trip",
		Code:       "VC_2024_09_07_demo1",
		Line:       "040 MADRID-VALENCIA",
		Track:      "V1",
		Date:       "2024-09-07",
		Technician: "Técnico de ejemplo",
		PKStart:    "0.0",
		PKEnd:      "168.5",
		Anomalies: Anomalies{
			{
				ID:       "sample-anomaly-1",
				Element:  "Balasto",
				Defect:   "Insuficiencia de balasto",
				Level:    catalog.SeverityIAL,
				PK:       "45.2",
				Notes:    "Falta de balasto en cabeza de traviesa, lado derecho.",
				Location: &Location{Lat: 40.0712, Lng: -2.1354},
			},
			{
				ID:      "sample-anomaly-2",
				Element: "Cerramientos",
				Defect:  "Mal estado puntual",
				Level:   catalog.SeverityIL,
				PK:      "102.7",
				Notes:   "Malla rota en un tramo corto.",
			},
		},
	}
}
