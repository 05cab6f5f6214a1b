package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	port          string
	serveSeedFile string
	seedFile      string
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "delivecrous",
		Short: "Dish catalog and basket backend",
	}

	root.AddCommand(serveCmd(), seedCmd())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and basket api over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := context.Background()

			// The local task queue calls back into this webserver
			os.Setenv("PORT", port)

			app, cleanup, err := newApplication(c)
			if err != nil {
				return err
			}
			defer cleanup()

			if serveSeedFile != "" {
				count, err := seedCatalog(c, app.catalog, serveSeedFile)
				if err != nil {
					return err
				}
				log.Printf("Seeded catalog with %d dishes from %s", count, serveSeedFile)
			}

			return startWebServerBlocking(app.router, port)
		},
	}

	cmd.Flags().StringVar(&port, "port", defaultPort(), "port to listen on (default $PORT or 8080)")
	cmd.Flags().StringVar(&serveSeedFile, "seed", "", "csv file with dishes to add to the catalog before serving")

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the dishes of a csv file to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := context.Background()

			app, cleanup, err := newApplication(c)
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := seedCatalog(c, app.catalog, seedFile)
			if err != nil {
				return err
			}
			cmd.Printf("Added %d dishes to the catalog\n", count)

			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "file", "dishes.csv", "csv file with records: name;description;price;imageUrl")

	return cmd
}

func defaultPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
