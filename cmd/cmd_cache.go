// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/cerca/geocode"
)

var cacheOptions = struct {
	CachePath string
}{}

func openCache() *geocode.FileCache {
	path := cacheOptions.CachePath
	if path == "" {
		path = defaultCachePath()
	}

	return geocode.NewFileCache(path)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Administra el caché de geocodificación",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Muestra el estado del caché",
	RunE: func(_ *cobra.Command, _ []string) error {
		cache := openCache()

		fmt.Printf("Archivo:  %s\n", cache.Path())
		fmt.Printf("Entradas: %d\n", cache.Len())

		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Vacía el caché",
	RunE: func(_ *cobra.Command, _ []string) error {
		cache := openCache()

		n := cache.Len()
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}

		fmt.Printf("Se eliminaron %d entradas de %s\n", n, cache.Path())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.PersistentFlags().StringVar(
		&cacheOptions.CachePath,
		"cache-path",
		"",
		"Archivo donde persistir el caché de geocodificación",
	)
}
