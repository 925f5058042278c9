package appointment

// DayState é quantas citas estão na fila para um dia do calendário do lote.
type DayState int

const (
	DayEmpty DayState = iota
	DayOne
	DayTwo
)

// StateOf converte a contagem de um dia no estado da máquina.
func StateOf(count int) DayState {
	switch {
	case count <= 0:
		return DayEmpty
	case count == 1:
		return DayOne
	default:
		return DayTwo
	}
}

type ToggleAction int

const (
	ToggleNone ToggleAction = iota
	ToggleAddOne
	ToggleRemoveOne
	ToggleRemoveAll
)

func (a ToggleAction) String() string {
	switch a {
	case ToggleAddOne:
		return "add"
	case ToggleRemoveOne:
		return "remove_one"
	case ToggleRemoveAll:
		return "remove_all"
	}
	return "none"
}

// Transition é o clique num dia: 0 -> 1 -> 2 -> 0. Do estado 1 o clique
// acrescenta a segunda sessão enquanto houver cota; com a cota cheia ele
// desfaz a única cita do dia.
func Transition(state DayState, total, quota int) (DayState, ToggleAction) {
	full := total >= quota

	switch state {
	case DayEmpty:
		if full {
			return DayEmpty, ToggleNone
		}
		return DayOne, ToggleAddOne
	case DayOne:
		if full {
			return DayEmpty, ToggleRemoveOne
		}
		return DayTwo, ToggleAddOne
	default:
		return DayEmpty, ToggleRemoveAll
	}
}
