package reply

import (
	"fmt"
	"strings"

	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inventory"
	"github.com/viniciusalbino/autoAtendeAI/internal/types"
)

// Format renders search results, one unit per vehicle, or the no-match notice.
func Format(vehicles []inventory.Vehicle) []Unit {
	if len(vehicles) == 0 {
		return []Unit{Text(NoMatchText)}
	}
	units := make([]Unit, 0, len(vehicles))
	for _, v := range vehicles {
		units = append(units, Unit{Text: summary(v), Image: v.PrimaryPhoto()})
	}
	return units
}

// Detail renders the technical sheet, the primary photo when present, and a prompt
// carrying actions.
func Detail(v inventory.Vehicle, actions []Action) []Unit {
	var b strings.Builder
	b.WriteString(header(v))
	b.WriteString("\n\nCaracterísticas Técnicas:\n")
	fmt.Fprintf(&b, "• Motor: %s\n", orNotInformed(v.Engine))
	fmt.Fprintf(&b, "• Câmbio: %s\n", orNotInformed(v.Transmission))
	fmt.Fprintf(&b, "• Combustível: %s\n", orNotInformed(v.Fuel))
	fmt.Fprintf(&b, "• Quilometragem: %s\n", mileage(v))
	b.WriteString("\nItens de Série:\n")
	if len(v.Options) == 0 {
		b.WriteString("• " + NotInformed + "\n")
	}
	for _, o := range v.Options {
		b.WriteString("• " + o + "\n")
	}
	fmt.Fprintf(&b, "\nPreço: %s", price(v))

	units := []Unit{Text(b.String())}
	if photo := v.PrimaryPhoto(); photo != "" {
		units = append(units, Unit{Text: DetailPhotoCaption, Image: photo})
	}
	return append(units, Unit{Text: DetailPromptText, Actions: actions})
}

// Gallery renders every photo of v as its own captioned unit.
func Gallery(v inventory.Vehicle) []Unit {
	if len(v.Photos) == 0 {
		return []Unit{Text(NoPhotosText)}
	}
	units := make([]Unit, 0, len(v.Photos))
	for i, photo := range v.Photos {
		units = append(units, Unit{Text: PhotoCaption(i+1, v.Model), Image: photo})
	}
	return units
}

func summary(v inventory.Vehicle) string {
	lines := []string{
		header(v),
		"Preço: " + price(v),
		"Cor: " + orNotInformed(deref(v.Color)),
		"Quilometragem: " + mileage(v),
		"Câmbio: " + orNotInformed(v.Transmission),
		"Combustível: " + orNotInformed(v.Fuel),
		"Itens: " + orNotInformed(strings.Join(v.Options, ", ")),
	}
	return strings.Join(lines, "\n")
}

func header(v inventory.Vehicle) string {
	parts := []string{v.Brand, v.Model}
	if v.Year != nil {
		parts = append(parts, fmt.Sprint(*v.Year))
	}
	return "*" + strings.Join(parts, " ") + "*"
}

func price(v inventory.Vehicle) string {
	if v.Price == nil {
		return NotInformed
	}
	return types.BRL(*v.Price)
}

func mileage(v inventory.Vehicle) string {
	if v.Mileage == nil {
		return NotInformed
	}
	return types.Kilometers(*v.Mileage)
}

func orNotInformed(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
