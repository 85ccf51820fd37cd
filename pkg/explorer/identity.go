package explorer

import "fmt"

// UseCaseID identifies one use-case box on the rendered value chain. The
// position index disambiguates duplicate labels within a step, so repeated
// clicks on the same box always resolve to the same conversation.
type UseCaseID struct {
	Step  string
	Label string
	Index int
}

// key flattens the identity into the "<stepIndex>-<useCaseIndex>" form the
// export files use, given the step's position in the active document.
func (id UseCaseID) key(stepIndex int) string {
	return fmt.Sprintf("%d-%d", stepIndex, id.Index)
}
