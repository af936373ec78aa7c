package usecase

import "math/rand/v2"

// StyleHints tone variations mixed into the rules block when enabled
var StyleHints = []string{
	"acolhedor e próximo, como uma conversa na loja",
	"elegante e objetivo",
	"entusiasmado, sem exageros",
	"calmo e consultivo, destacando os detalhes da peça",
	"leve e simpático",
}

// ChooseStyle draws one hint from StyleHints using r.
// Callers pass the source explicitly so a fixed seed reproduces the choice.
func ChooseStyle(r *rand.Rand) string {
	if len(StyleHints) == 0 {
		return ""
	}
	if r == nil {
		return StyleHints[rand.IntN(len(StyleHints))]
	}
	return StyleHints[r.IntN(len(StyleHints))]
}
