package workflow

import (
	"fmt"

	"github.com/Veraticus/biblio/internal/model"
)

// User-facing texts.
const (
	msgServiceFailure = "Une erreur est survenue : échec de la connexion à l'API. Vérifiez votre réseau ou l'URL."
	msgAnswerYesNo    = `Veuillez répondre par "Oui" ou "Non".`
	msgChooseCategory = "Veuillez choisir une catégorie."
)

// ConfirmationQuestion is the text shown while awaiting confirmation.
func ConfirmationQuestion(category model.Category) string {
	return fmt.Sprintf("La catégorie %q est-elle correcte ? (Oui/Non)", string(category))
}

func correctionThanks(category model.Category) string {
	return fmt.Sprintf("Merci ! La catégorie a été corrigée à %s.", category)
}
