package compiler

import (
	"regexp"
	"strings"

	"github.com/librogame/passomorto/internal/entities"
)

// Legacy chapters offer items in prose ("Puoi prendere la Corda.") rather
// than through an explicit directive. The scan below migrates those
// phrases into explicit item offers at compile time, so the engine never
// pattern-matches narrative text at runtime.
var itemOfferRe = regexp.MustCompile(`(?i)Puoi prendere (?:l'|il |lo |la |le |gli |i |un'|un |una |uno |quest[aoei] )?([\w\s/]+?(?: \([\w\s]+\))?)(?: se lo desideri)?\.`)

// ScanItemOffers extracts acquisition phrases from chapter text and turns
// them into item offers, inferring each item's type from its /subtype
// naming convention
func ScanItemOffers(text string) []entities.ItemOffer {
	var offers []entities.ItemOffer
	for _, m := range itemOfferRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		offers = append(offers, entities.ItemOffer{
			Name: name,
			Type: entities.InferItemType(name),
		})
	}
	return offers
}
