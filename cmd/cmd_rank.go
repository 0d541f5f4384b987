// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/locate"
	"github.com/jcodagnone/cerca/places"
	"github.com/jcodagnone/cerca/rank"
	"github.com/jcodagnone/cerca/spatial"
)

var rankOptions = struct {
	clientOptions

	Lat        float64
	Lng        float64
	Top        int
	BatchSize  int
	BatchDelay time.Duration
	AsJSON     bool
}{}

var rankCmd = &cobra.Command{
	Use:   "rank <archivo>",
	Short: "Ordena los lugares del archivo por cercanía",
	Long: `
Lee un CSV (columnas name,url) o un archivo HTML de marcadores, resuelve cada
lugar a coordenadas y muestra los más cercanos a la posición indicada. Si no
se indica --lat/--lng se estima la posición a partir de la IP pública.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(args[0])
		if err != nil {
			return err
		}

		origin, err := resolveOrigin(cmd)
		if err != nil {
			return err
		}

		resolver := newResolver(cmd.Context(), &rankOptions.clientOptions)

		pipeline := rank.NewPipeline(resolver, rank.Options{
			TopK: rankOptions.Top,
			Batch: geocode.BatchOptions{
				Size:     rankOptions.BatchSize,
				Delay:    rankOptions.BatchDelay,
				Progress: newProgress(),
			},
		})

		ranked, err := pipeline.Run(cmd.Context(), origin, records)
		if errors.Is(err, rank.ErrNoCoordinates) {
			fmt.Println("Ningún lugar pudo resolverse a coordenadas.")

			return nil
		} else if err != nil {
			return err
		}

		if rankOptions.AsJSON {
			return printJSON(origin, ranked)
		}

		printTable(origin, ranked)

		return nil
	},
}

// loadRecords parses the input: bookmark exports are HTML (by extension
// or by a leading markup tag), anything else is treated as CSV.
func loadRecords(path string) ([]*places.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	looksHTML := strings.HasPrefix(strings.TrimSpace(string(data)), "<")

	if ext == ".html" || ext == ".htm" || looksHTML {
		return places.ParseBookmarks(strings.NewReader(string(data)))
	}

	return places.ParseCSV(string(data)), nil
}

func resolveOrigin(cmd *cobra.Command) (spatial.Point, error) {
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		origin := spatial.Point{Lat: rankOptions.Lat, Lng: rankOptions.Lng}
		if !origin.Valid() {
			return spatial.Point{}, fmt.Errorf("origin out of range: %s", origin)
		}

		return origin, nil
	}

	client := newHTTPClient(&rankOptions.clientOptions)

	origin, err := locate.NewIPAPI(client).Locate(cmd.Context())
	if err != nil {
		return spatial.Point{}, fmt.Errorf("locating via public IP (use --lat/--lng): %w", err)
	}

	fmt.Fprintf(os.Stderr, "Posición estimada por IP: %s\n", origin)

	return origin, nil
}

// newProgress returns a per-batch callback drawing a progress bar, or
// nil when stderr is not a terminal. The bar is sized on first call:
// only then is it known how many places actually need geocoding.
func newProgress() func(resolved, total int) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	var bar *progressbar.ProgressBar

	return func(resolved, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Resolviendo lugares"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		_ = bar.Set(resolved)
	}
}

func printJSON(origin spatial.Point, ranked []*rank.Place) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(map[string]any{
		"origin": origin,
		"places": ranked,
	})
}

func printTable(origin spatial.Point, ranked []*rank.Place) {
	nameWidth := len("Lugar")
	for _, p := range ranked {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	fmt.Printf("Lugares más cercanos a %s:\n", origin)

	a, b, c := strings.Repeat("─", nameWidth), strings.Repeat("─", 9), strings.Repeat("─", 6)
	fmt.Printf("╭─%s─┬─%s─┬─%s─╮\n", a, b, c)
	fmt.Printf("│ %-*s │ %9s │ %-6s │\n", nameWidth, "Lugar", "Distancia", "Rumbo")
	fmt.Printf("├─%s─┼─%s─┼─%s─┤\n", a, b, c)

	for _, p := range ranked {
		fmt.Printf("│ %-*s │ %9s │ %-6s │\n", nameWidth, p.Name, p.Distance, p.Direction)
	}

	fmt.Printf("╰─%s─┴─%s─┴─%s─╯\n", a, b, c)
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().Float64Var(&rankOptions.Lat, "lat", 0, "Latitud del origen")
	rankCmd.Flags().Float64Var(&rankOptions.Lng, "lng", 0, "Longitud del origen")
	rankCmd.Flags().IntVar(&rankOptions.Top, "top", rank.DefaultTopK, "Cantidad de lugares a mostrar")
	rankCmd.Flags().IntVar(
		&rankOptions.BatchSize,
		"batch-size",
		geocode.DefaultBatchSize,
		"Cantidad de lugares a geocodificar en simultáneo",
	)
	rankCmd.Flags().DurationVar(
		&rankOptions.BatchDelay,
		"batch-delay",
		geocode.DefaultBatchDelay,
		"Pausa entre tandas de geocodificación",
	)
	rankCmd.Flags().StringVar(
		&rankOptions.CachePath,
		"cache-path",
		"",
		"Archivo donde persistir el caché de geocodificación",
	)
	rankCmd.Flags().BoolVar(&rankOptions.AsJSON, "json", false, "Salida en formato JSON")
	rankCmd.Flags().BoolVar(
		&rankOptions.UseGoogle,
		"google",
		false,
		"Habilita Google Maps como geocodificador adicional (clave vía ADC)",
	)
	rankCmd.Flags().BoolVar(
		&rankOptions.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	rankCmd.Flags().BoolVar(
		&rankOptions.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
