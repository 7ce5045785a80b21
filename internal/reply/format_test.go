package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inventory"
)

func corolla() inventory.Vehicle {
	year, km, price, color := 2021, 35000, 90000.0, "Prata"
	return inventory.Vehicle{
		Brand:        "Toyota",
		Model:        "Corolla",
		Year:         &year,
		Price:        &price,
		Color:        &color,
		Mileage:      &km,
		Transmission: "Automático",
		Fuel:         "Flex",
		Engine:       "2.0",
		Options:      []string{"Ar Condicionado", "Câmera de Ré"},
		Photos:       []string{"https://cdn/corolla-1.jpg", "https://cdn/corolla-2.jpg"},
	}
}

func TestFormatEmpty(t *testing.T) {
	units := Format(nil)
	require.Len(t, units, 1)
	assert.Equal(t, NoMatchText, units[0].Text)
	assert.Empty(t, units[0].Image)
	assert.Empty(t, units[0].Actions)
}

func TestFormatVehicle(t *testing.T) {
	units := Format([]inventory.Vehicle{corolla()})
	require.Len(t, units, 1)

	want := "*Toyota Corolla 2021*\n" +
		"Preço: R$ 90,000.00\n" +
		"Cor: Prata\n" +
		"Quilometragem: 35,000 km\n" +
		"Câmbio: Automático\n" +
		"Combustível: Flex\n" +
		"Itens: Ar Condicionado, Câmera de Ré"
	assert.Equal(t, want, units[0].Text)
	assert.Equal(t, "https://cdn/corolla-1.jpg", units[0].Image)
}

func TestFormatMissingFields(t *testing.T) {
	units := Format([]inventory.Vehicle{{Brand: "Fiat", Model: "Uno"}})
	require.Len(t, units, 1)
	assert.Contains(t, units[0].Text, "*Fiat Uno*")
	assert.Contains(t, units[0].Text, "Preço: Não informado")
	assert.Contains(t, units[0].Text, "Cor: Não informado")
	assert.Contains(t, units[0].Text, "Quilometragem: Não informado")
	assert.Contains(t, units[0].Text, "Itens: Não informado")
	assert.Empty(t, units[0].Image)
}

func TestDetail(t *testing.T) {
	actions := []Action{{ID: "more-photos:corolla", Label: LabelGallery}}
	units := Detail(corolla(), actions)
	require.Len(t, units, 3)

	assert.Contains(t, units[0].Text, "Características Técnicas:")
	assert.Contains(t, units[0].Text, "• Motor: 2.0")
	assert.Contains(t, units[0].Text, "Itens de Série:\n• Ar Condicionado\n• Câmera de Ré\n")
	assert.Contains(t, units[0].Text, "Preço: R$ 90,000.00")

	assert.Equal(t, "https://cdn/corolla-1.jpg", units[1].Image)
	assert.Equal(t, DetailPromptText, units[2].Text)
	assert.Equal(t, actions, units[2].Actions)
}

func TestDetailWithoutPhotos(t *testing.T) {
	v := corolla()
	v.Photos = nil
	v.Options = nil
	units := Detail(v, nil)
	require.Len(t, units, 2)
	assert.Contains(t, units[0].Text, "Itens de Série:\n• Não informado")
}

func TestGallery(t *testing.T) {
	units := Gallery(corolla())
	require.Len(t, units, 2)
	assert.Equal(t, "Foto 1 do Corolla", units[0].Text)
	assert.Equal(t, "https://cdn/corolla-2.jpg", units[1].Image)

	empty := Gallery(inventory.Vehicle{Model: "Uno"})
	require.Len(t, empty, 1)
	assert.Equal(t, NoPhotosText, empty[0].Text)
}
