package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseLocations_Latin1ConCabecera(t *testing.T) {
	utf8 := "sede;departamento\nCasa Matriz;Contabilidad\nCasa Matriz; Tecnología\n\nSucursal Norte;\n"
	latin1, _, err := transform.String(charmap.ISO8859_1.NewEncoder(), utf8)
	require.NoError(t, err)

	locs, err := parseLocations(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, location{branch: "Casa Matriz", department: "Tecnología"}, locs[1])
	assert.Equal(t, location{branch: "Sucursal Norte"}, locs[2])
}

func TestWriteMigration_IDsEstablesYEscape(t *testing.T) {
	locs := []location{
		{branch: "Casa Matriz", department: "Contabilidad"},
		{branch: "Casa Matriz", department: "Contabilidad"},
		{branch: "O'Higgins", department: "Bodega"},
		{branch: "Sucursal Norte"},
	}
	var a, b bytes.Buffer
	branches, depts := writeMigration(&a, locs)
	writeMigration(&b, locs)

	assert.Equal(t, 3, branches)
	assert.Equal(t, 2, depts, "los duplicados se colapsan")
	assert.Equal(t, a.String(), b.String(), "regenerar produce el mismo archivo")

	sql := a.String()
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "'O''Higgins'")
	assert.Contains(t, sql, branchID("Casa Matriz"))
	assert.Less(t, strings.Index(sql, "INSERT INTO branches"), strings.Index(sql, "INSERT INTO departments"))
}
