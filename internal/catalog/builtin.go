package catalog

var builtin = []Element{
	{
		Name: "Carril",
		Defects: []Defect{
			{Name: "Estado de carril", Severity: SeverityIAL},
			{Name: "Cabeza de carril. Soldaduras", Severity: SeverityIAL},
		},
	},
	{
		Name:    "Traviesas Hormigón o Bibloque",
		Defects: []Defect{{Name: "Estado de la traviesa", Severity: SeverityIAL}},
	},
	{
		Name:    "Traviesas Madera",
		Defects: []Defect{{Name: "Estado de la traviesa", Severity: SeverityIAL}},
	},
	{
		Name: "Balasto",
		Defects: []Defect{
			{Name: "Contaminación de balasto", Severity: SeverityIAL},
			{Name: "Insuficiencia de balasto", Severity: SeverityIAL},
			{Name: "Exceso de balasto sobre traviesas", Severity: SeverityIAL},
			{Name: "Presencia de vegetación", Severity: SeverityIAL},
		},
	},
	{
		Name: "Geometría de vía",
		Defects: []Defect{
			{Name: "Defecto alineación planta (garrotes, ripados)", Severity: SeverityIAL},
			{Name: "Defecto nivelación alzado (Bache)", Severity: SeverityIAL},
		},
	},
	{
		Name: "Cerramientos",
		Defects: []Defect{
			{Name: "Mal estado general", Severity: SeverityIAL},
			{Name: "Mal estado puntual", Severity: SeverityIL},
		},
	},
	{
		Name: "Limpieza del entorno ferroviario",
		Defects: []Defect{
			{Name: "Obstáculos en la zona de peligro", Severity: SeverityIAL},
			{Name: "Obstáculos en la zona de seguridad", Severity: SeverityIL},
			{Name: "Presencia de vegetación en márgenes invadiendo gálibo", Severity: SeverityIL},
		},
	},
	{
		Name: "Cartelones",
		Defects: []Defect{
			{Name: "Mala colocación", Severity: SeverityIAL},
			{Name: "Falta de señales o fuera de servicio", Severity: SeverityIL},
		},
	},
	{
		Name:    "Desmontes",
		Defects: []Defect{{Name: "Deficiente estado apreciable", Severity: SeverityIAL}},
	},
	{
		Name:    "Puentes",
		Defects: []Defect{{Name: "Deficiente estado apreciable", Severity: SeverityIAL}},
	},
	{
		Name:    "Túneles",
		Defects: []Defect{{Name: "Deficiente estado apreciable", Severity: SeverityIAL}},
	},
}
