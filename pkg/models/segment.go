package models

// Segment est l'un des huit groupes de clients.
type Segment string

const (
	HighValue        Segment = "High-Value"
	FocusDevelop     Segment = "Focus-Develop"
	FocusRetainValue Segment = "Focus-Retain-Value"
	FocusWinBack     Segment = "Focus-Win-Back"
	GeneralValue     Segment = "General-Value"
	GeneralDevelop   Segment = "General-Develop"
	GeneralRetain    Segment = "General-Retain"
	GeneralWinBack   Segment = "General-Win-Back"
)

// Segments liste les huit segments dans l'ordre de l'arbre de décision.
var Segments = []Segment{
	HighValue, FocusDevelop, FocusRetainValue, FocusWinBack,
	GeneralValue, GeneralDevelop, GeneralRetain, GeneralWinBack,
}

var zhLabels = map[Segment]string{
	HighValue:        "高价值客户",
	FocusDevelop:     "重点发展客户",
	FocusRetainValue: "重点保持客户",
	FocusWinBack:     "重点挽留客户",
	GeneralValue:     "一般价值客户",
	GeneralDevelop:   "一般发展客户",
	GeneralRetain:    "一般保持客户",
	GeneralWinBack:   "一般挽留客户",
}

// Label renvoie le libellé affiché pour la langue demandée ("en" ou "zh").
func (s Segment) Label(lang string) string {
	if lang == "zh" {
		if l, ok := zhLabels[s]; ok {
			return l
		}
	}
	return string(s)
}
