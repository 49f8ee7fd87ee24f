package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("  \n ")

	require.Error(t, err)
	assert.Equal(t, xornal.EINVALID, xornal.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Festival de cine en Vigo</title></head>
<body><article><p>O festival abre coa proxección de tres curtas galegas.</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Festival de cine en Vigo", result.Title)
}

func TestExtractor_ReturnsArticleText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/politica">Política</a><a href="/cultura">Cultura</a></nav>
<article>
<p>O Parlamento aprobou onte a nova lei de normalización lingüística despois dun longo debate.</p>
<p>A oposición anunciou que presentará emendas durante o trámite no Senado.</p>
</article>
<footer><p>Praza Pública 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "nova lei de normalización lingüística")
	assert.Contains(t, result.Text, "trámite no Senado")
	assert.NotContains(t, result.Text, "Praza Pública 2024")
	assert.Equal(t, strings.TrimSpace(result.Text), result.Text)
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Orzamentos</title></head>
<body>
<nav class="menu"><a href="/politica">Portada</a><a href="/cultura">Cultura</a><a href="/mundo">Mundo</a></nav>
<aside class="sidebar"><p>As máis lidas da semana</p></aside>
<article>
<p>O Goberno galego presentou este martes no Parlamento o proxecto de orzamentos para o próximo ano, cun incremento do gasto en sanidade, educación e servizos sociais.</p>
<p>A conselleira de Facenda defendeu que as contas, elaboradas nun contexto de incerteza, manteñen a estabilidade fiscal e reducen a débeda pública, segundo explicou ante os medios.</p>
<p>A oposición, pola súa banda, criticou que o investimento en vivenda e transporte público segue a ser insuficiente, e anunciou que presentará emendas á totalidade nas próximas semanas.</p>
<p>O debate das contas comezará no pleno do mes que vén, e a súa aprobación definitiva está prevista para finais de decembro, despois do trámite en comisión.</p>
</article>
<footer class="footer"><p>Praza Pública, todos os dereitos reservados</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "proxecto de orzamentos")
	assert.Contains(t, result.Text, "finais de decembro")
	assert.NotContains(t, result.Text, "Portada")
	assert.NotContains(t, result.Text, "As máis lidas")
	assert.NotContains(t, result.Text, "dereitos reservados")
}

func TestExtractor_ResolvesLinksAgainstPageURL(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>This is a long enough paragraph of article content with a <a href="/cultura/festival">link to the festival</a> inside it.</p>
<p>And another paragraph so that the article is recognised as the main content block.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor(readability.WithPageURL("https://www.nosdiario.gal"))
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "https://www.nosdiario.gal/cultura/festival")
}
