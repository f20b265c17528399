package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"VinylFM/config"
	"VinylFM/core/discogs"
	"VinylFM/core/record"

	"github.com/spf13/cobra"
)

var searchQuery string

var discogsCmd = &cobra.Command{
	Use:   "discogs",
	Short: "Discogs catalog lookup tool",
	Long:  `Search the Discogs catalog from the terminal and preview the derived duration and tracklist for a selected release.`,
	Run: func(cmd *cobra.Command, args []string) {
		if searchQuery == "" {
			fmt.Println("Please provide a search query with -q")
			os.Exit(1)
		}

		cfg := config.Load()
		client := discogs.NewClient(cfg.DiscogsAPIURL, cfg.DiscogsToken)

		fmt.Printf("Searching: %s\n", searchQuery)
		results, err := client.Search(context.Background(), searchQuery)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}

		if len(results) == 0 {
			fmt.Println("No releases found")
			return
		}

		fmt.Printf("\nFound %d releases:\n", len(results))
		for i, r := range results {
			artist, album := record.ParseArtistAlbum(r.Title)
			fmt.Printf("%d. %s - %s (%s) [%s]\n", i+1, artist, album, r.Year, r.Genre)
		}

		var choice int
		fmt.Print("\nPick a release number to preview: ")
		fmt.Scan(&choice)

		if choice < 1 || choice > len(results) {
			fmt.Println("Invalid choice")
			return
		}

		selected := results[choice-1]
		detail, err := client.GetRelease(context.Background(), selected.ExternalID)
		if err != nil {
			log.Fatalf("Failed to fetch release: %v", err)
		}

		fmt.Printf("\nTitle: %s\n", selected.Title)
		fmt.Printf("Tracks: %d\n", len(detail.Tracks))
		fmt.Printf("Duration: %d minutes\n", record.DeriveDuration(detail.Tracks))
		fmt.Printf("Tracklist: %s\n", record.DeriveTracklist(detail.Tracks))
	},
}

func init() {
	rootCmd.AddCommand(discogsCmd)

	discogsCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "release search query")
}
