// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/rank"
)

var serveOptions = struct {
	clientOptions

	Addr      string
	Top       int
	BatchSize int
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expone el ranking de lugares por HTTP",
	Long: `
Levanta un servidor HTTP con un único endpoint: POST /api/rank recibe un CSV
de lugares y responde con los más cercanos a lat/lng en formato JSON.
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resolver := newResolver(cmd.Context(), &serveOptions.clientOptions)

		pipeline := rank.NewPipeline(resolver, rank.Options{
			TopK: serveOptions.Top,
			Batch: geocode.BatchOptions{
				Size: serveOptions.BatchSize,
			},
		})

		router := gin.Default()
		rank.NewServer(pipeline).Register(router)

		return router.Run(serveOptions.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOptions.Addr, "addr", ":8080", "Dirección donde escuchar")
	serveCmd.Flags().IntVar(&serveOptions.Top, "top", rank.DefaultTopK, "Cantidad de lugares a responder")
	serveCmd.Flags().IntVar(
		&serveOptions.BatchSize,
		"batch-size",
		geocode.DefaultBatchSize,
		"Cantidad de lugares a geocodificar en simultáneo",
	)
	serveCmd.Flags().StringVar(
		&serveOptions.CachePath,
		"cache-path",
		"",
		"Archivo donde persistir el caché de geocodificación",
	)
	serveCmd.Flags().BoolVar(
		&serveOptions.UseGoogle,
		"google",
		false,
		"Habilita Google Maps como geocodificador adicional (clave vía ADC)",
	)
}
