// seed_org genera un script SQL para poblar estructuras y puestos a partir de la exportación
// CSV (separador ';', codificación ISO-8859-1) de la planta de personal.
//
// Columnas: tipo;codigo;nombre;padre
//   - tipo ESTRUCTURA: padre es el código de la estructura superior (vacío para la raíz).
//   - tipo PUESTO: padre es el código de la estructura a la que pertenece; queda VACANT.
//
// Uso: go run ./cmd/seed_org planta.csv [salida.sql]
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	kindStructure = "ESTRUCTURA"
	kindPosition  = "PUESTO"
	seedActor     = "seed_org"
)

var requiredColumns = []string{"tipo", "codigo", "nombre", "padre"}

type row struct {
	line   int
	kind   string
	code   string
	name   string
	parent string
}

type seedStructure struct {
	id, code, name string
	parentID       string
}

type seedPosition struct {
	id, code, title string
	structureID     string
}

type seedPlan struct {
	structures []seedStructure // padres antes que hijos
	positions  []seedPosition
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_org planta.csv [salida.sql]")
		os.Exit(2)
	}
	outPath := "seed_org.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	plan, err := buildPlan(rows, func() string { return uuid.New().String() })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validar planta: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSQL(out, plan, time.Now().UTC()); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d estructuras, %d puestos\n", outPath, len(plan.structures), len(plan.positions))
}

// readRows decodifica Latin-1 y lee las filas con cabecera obligatoria.
func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("falta la cabecera")
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if field("tipo") == "" && field("codigo") == "" {
			continue
		}
		rows = append(rows, row{
			line:   line,
			kind:   strings.ToUpper(field("tipo")),
			code:   strings.ToUpper(field("codigo")),
			name:   field("nombre"),
			parent: strings.ToUpper(field("padre")),
		})
	}
	return rows, nil
}

// buildPlan resuelve códigos a ids y ordena las estructuras de modo que cada padre preceda a sus hijos.
func buildPlan(rows []row, newID func() string) (*seedPlan, error) {
	structs := make(map[string]*seedStructure)
	parents := make(map[string]string)
	var posRows []row
	for _, r := range rows {
		if r.code == "" || r.name == "" {
			return nil, fmt.Errorf("línea %d: codigo y nombre son obligatorios", r.line)
		}
		switch r.kind {
		case kindStructure:
			if _, dup := structs[r.code]; dup {
				return nil, fmt.Errorf("línea %d: estructura duplicada %s", r.line, r.code)
			}
			structs[r.code] = &seedStructure{id: newID(), code: r.code, name: r.name}
			parents[r.code] = r.parent
		case kindPosition:
			posRows = append(posRows, r)
		default:
			return nil, fmt.Errorf("línea %d: tipo desconocido %q", r.line, r.kind)
		}
	}

	plan := &seedPlan{}
	state := make(map[string]int) // 1 visitando, 2 emitida
	var visit func(code string) error
	visit = func(code string) error {
		switch state[code] {
		case 1:
			return fmt.Errorf("ciclo en la jerarquía en %s", code)
		case 2:
			return nil
		}
		state[code] = 1
		if p := parents[code]; p != "" {
			parent, ok := structs[p]
			if !ok {
				return fmt.Errorf("estructura %s: padre inexistente %s", code, p)
			}
			if err := visit(p); err != nil {
				return err
			}
			structs[code].parentID = parent.id
		}
		state[code] = 2
		plan.structures = append(plan.structures, *structs[code])
		return nil
	}
	codes := make([]string, 0, len(structs))
	for c := range structs {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	for _, c := range codes {
		if err := visit(c); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(posRows))
	for _, r := range posRows {
		if _, dup := seen[r.code]; dup {
			return nil, fmt.Errorf("línea %d: puesto duplicado %s", r.line, r.code)
		}
		seen[r.code] = struct{}{}
		s, ok := structs[r.parent]
		if !ok {
			return nil, fmt.Errorf("línea %d: puesto %s sin estructura válida (%q)", r.line, r.code, r.parent)
		}
		plan.positions = append(plan.positions, seedPosition{id: newID(), code: r.code, title: r.name, structureID: s.id})
	}
	return plan, nil
}

// writeSQL emite el script en una sola transacción y recalcula los contadores de ocupación.
func writeSQL(w io.Writer, plan *seedPlan, now time.Time) error {
	ts := now.Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("-- Planta de personal: estructuras y puestos (generado por seed_org)\n")
	b.WriteString("BEGIN;\n\n")

	b.WriteString("-- 1. Estructuras\n")
	for _, s := range plan.structures {
		parent := "NULL"
		if s.parentID != "" {
			parent = "'" + s.parentID + "'"
		}
		fmt.Fprintf(&b, "INSERT INTO structures (id, code, name, parent_id) VALUES ('%s', '%s', '%s', %s);\n",
			s.id, escapeSQL(s.code), escapeSQL(s.name), parent)
	}

	b.WriteString("\n-- 2. Puestos (vacantes)\n")
	for _, p := range plan.positions {
		fmt.Fprintf(&b, "INSERT INTO positions (id, code, title, structure_id, status, created_at, created_by, updated_at, updated_by)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', 'VACANT', '%s', '%s', '%s', '%s');\n",
			p.id, escapeSQL(p.code), escapeSQL(p.title), p.structureID, ts, seedActor, ts, seedActor)
	}

	b.WriteString("\n-- 3. Contadores\n")
	b.WriteString(`UPDATE structures s
SET total_positions = c.total, occupied_positions = 0, vacant_positions = c.total, occupancy_rate = 0
FROM (SELECT structure_id, COUNT(*) AS total FROM positions WHERE deleted_at IS NULL GROUP BY structure_id) c
WHERE s.id = c.structure_id;
`)
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
