package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// latin1 codifica el texto como lo exporta la hoja de cálculo.
func latin1(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	enc, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(enc))
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

const planta = `Tipo;Codigo;Nombre;Padre
PUESTO;an-01;Analista de Nómina;rrhh
ESTRUCTURA;rrhh;Gestión Humana;dir
ESTRUCTURA;dir;Dirección General;
;;;
PUESTO;dir-01;Director;DIR
`

func TestReadRows_DecodificaLatin1(t *testing.T) {
	rows, err := readRows(latin1(t, planta))
	require.NoError(t, err)
	require.Len(t, rows, 4, "las filas vacías se omiten")
	assert.Equal(t, "Analista de Nómina", rows[0].name)
	assert.Equal(t, "AN-01", rows[0].code)
	assert.Equal(t, "RRHH", rows[0].parent)
	assert.Equal(t, 6, rows[3].line)
}

func TestReadRows_CabeceraIncompleta(t *testing.T) {
	_, err := readRows(latin1(t, "tipo;codigo;nombre\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padre")

	_, err = readRows(latin1(t, ""))
	require.Error(t, err)
}

func TestBuildPlan_PadresPrimero(t *testing.T) {
	rows, err := readRows(latin1(t, planta))
	require.NoError(t, err)
	plan, err := buildPlan(rows, sequentialIDs())
	require.NoError(t, err)

	require.Len(t, plan.structures, 2)
	assert.Equal(t, "DIR", plan.structures[0].code)
	assert.Empty(t, plan.structures[0].parentID)
	assert.Equal(t, "RRHH", plan.structures[1].code)
	assert.Equal(t, plan.structures[0].id, plan.structures[1].parentID)

	require.Len(t, plan.positions, 2)
	assert.Equal(t, plan.structures[1].id, plan.positions[0].structureID)
	assert.Equal(t, plan.structures[0].id, plan.positions[1].structureID)
}

func TestBuildPlan_Errores(t *testing.T) {
	cases := map[string]string{
		"tipo desconocido":    "tipo;codigo;nombre;padre\nOFICINA;A;A;\n",
		"padre inexistente":   "tipo;codigo;nombre;padre\nESTRUCTURA;A;A;Z\n",
		"ciclo":               "tipo;codigo;nombre;padre\nESTRUCTURA;A;A;B\nESTRUCTURA;B;B;A\n",
		"puesto sin padre":    "tipo;codigo;nombre;padre\nPUESTO;P;P;X\n",
		"puesto duplicado":    "tipo;codigo;nombre;padre\nESTRUCTURA;A;A;\nPUESTO;P;P;A\nPUESTO;p;P;A\n",
		"estructura repetida": "tipo;codigo;nombre;padre\nESTRUCTURA;A;A;\nESTRUCTURA;a;A;\n",
		"sin nombre":          "tipo;codigo;nombre;padre\nESTRUCTURA;A;;\n",
	}
	for name, csv := range cases {
		t.Run(name, func(t *testing.T) {
			rows, err := readRows(latin1(t, csv))
			require.NoError(t, err)
			_, err = buildPlan(rows, sequentialIDs())
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL(t *testing.T) {
	plan := &seedPlan{
		structures: []seedStructure{{id: "s-1", code: "DIR", name: "Dirección O'Higgins"}},
		positions:  []seedPosition{{id: "p-1", code: "DIR-01", title: "Director", structureID: "s-1"}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, plan, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	sql := buf.String()

	assert.True(t, strings.HasPrefix(sql, "-- Planta"))
	assert.Contains(t, sql, "'Dirección O''Higgins', NULL);")
	assert.Contains(t, sql, "'p-1', 'DIR-01', 'Director', 's-1', 'VACANT', '2024-01-01T00:00:00Z'")
	assert.Contains(t, sql, "UPDATE structures s")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
