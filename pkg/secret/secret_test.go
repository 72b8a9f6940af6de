package secret_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/pkg/secret"
)

func TestBox_SealOpen(t *testing.T) {
	box, err := secret.NewBox("clave-de-prueba")
	require.NoError(t, err)

	sealed, err := box.Seal("BitLocker-1234")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "BitLocker", "el valor sellado no debe contener el texto plano")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "BitLocker-1234", plain)
}

func TestBox_NonceDistintoCadaVez(t *testing.T) {
	box, _ := secret.NewBox("k")
	a, _ := box.Seal("igual")
	b, _ := box.Seal("igual")
	assert.NotEqual(t, a, b)
}

func TestBox_ClaveIncorrecta(t *testing.T) {
	box1, _ := secret.NewBox("uno")
	box2, _ := secret.NewBox("dos")
	sealed, err := box1.Seal("secreto")
	require.NoError(t, err)

	_, err = box2.Open(sealed)
	assert.ErrorIs(t, err, secret.ErrMalformed)
}

func TestBox_Vacio(t *testing.T) {
	box, _ := secret.NewBox("k")
	sealed, err := box.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	plain, err := box.Open("")
	require.NoError(t, err)
	assert.Empty(t, plain)

	_, err = box.Open("no-es-base64!!")
	assert.ErrorIs(t, err, secret.ErrMalformed)
}

func TestNewBox_PassphraseVacia(t *testing.T) {
	_, err := secret.NewBox("")
	assert.Error(t, err)
}
