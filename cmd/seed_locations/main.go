// seed_locations genera una migración goose con las sedes y departamentos de la empresa
// a partir de un CSV "sede;departamento" (el que exporta RR.HH., normalmente en Latin-1).
//
// Uso: go run ./cmd/seed_locations [-latin1] [-out archivo.sql] [ruta/ubicaciones.csv]
// Por defecto lee ubicaciones.csv y escribe
// internal/infrastructure/postgres/migrations/00002_seed_locations.sql
//
// Los IDs se derivan del nombre (UUID v5), así que regenerar el archivo no cambia los IDs.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type location struct {
	branch     string
	department string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	outFlag := flag.String("out", "", "ruta del .sql generado")
	flag.Parse()

	csvPath := "ubicaciones.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	locs, err := parseLocations(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "00002_seed_locations.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	branches, depts := writeMigration(out, locs)
	fmt.Printf("Generado %s: %d sedes, %d departamentos\n", outPath, branches, depts)
}

// parseLocations lee filas "sede;departamento". La cabecera es opcional; filas vacías se ignoran.
// Una sede sin departamento solo crea la sede.
func parseLocations(r io.Reader) ([]location, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []location
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sede") {
			continue
		}
		loc := location{branch: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			loc.department = strings.TrimSpace(rec[1])
		}
		out = append(out, loc)
	}
	return out, nil
}

// writeMigration escribe el archivo goose y devuelve cuántas sedes y departamentos incluye.
func writeMigration(w io.Writer, locs []location) (int, int) {
	deptsByBranch := make(map[string]map[string]struct{})
	for _, l := range locs {
		if _, ok := deptsByBranch[l.branch]; !ok {
			deptsByBranch[l.branch] = map[string]struct{}{}
		}
		if l.department != "" {
			deptsByBranch[l.branch][l.department] = struct{}{}
		}
	}
	branches := make([]string, 0, len(deptsByBranch))
	for b := range deptsByBranch {
		branches = append(branches, b)
	}
	sort.Strings(branches)

	fmt.Fprintln(w, "-- Sedes y departamentos generados con cmd/seed_locations")
	fmt.Fprintln(w, "-- +goose Up")
	fmt.Fprintln(w, "-- 1. Sedes")
	for _, b := range branches {
		fmt.Fprintf(w, "INSERT INTO branches (id, name) VALUES ('%s', '%s') ON CONFLICT (name) DO NOTHING;\n",
			branchID(b), escapeSQL(b))
	}

	fmt.Fprintln(w, "\n-- 2. Departamentos por sede")
	var ids []string
	total := 0
	for _, b := range branches {
		names := make([]string, 0, len(deptsByBranch[b]))
		for d := range deptsByBranch[b] {
			names = append(names, d)
		}
		sort.Strings(names)
		for _, d := range names {
			id := departmentID(b, d)
			ids = append(ids, "'"+id+"'")
			fmt.Fprintf(w, "INSERT INTO departments (id, name, branch_id)\n")
			fmt.Fprintf(w, "SELECT '%s', '%s', id FROM branches WHERE name = '%s'\n", id, escapeSQL(d), escapeSQL(b))
			fmt.Fprintln(w, "ON CONFLICT DO NOTHING;")
			total++
		}
	}

	fmt.Fprintln(w, "\n-- +goose Down")
	if len(ids) > 0 {
		fmt.Fprintf(w, "DELETE FROM departments WHERE id IN (%s);\n", strings.Join(ids, ", "))
	}
	if len(branches) > 0 {
		bids := make([]string, 0, len(branches))
		for _, b := range branches {
			bids = append(bids, "'"+branchID(b)+"'")
		}
		fmt.Fprintf(w, "DELETE FROM branches WHERE id IN (%s);\n", strings.Join(bids, ", "))
	}
	return len(branches), total
}

func branchID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("branch:"+name)).String()
}

func departmentID(branch, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("department:"+branch+"/"+name)).String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
