package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"geohash-codec/geohash"
	"geohash-codec/models"
)

func newEncodeCmd() *cobra.Command {
	var (
		lat, lon, precision float64
		length              int
		asJSON              bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a coordinate into a geohash",
		Long: `Encode prints the geohash of --lat/--lon.

The hash is made long enough to resolve --precision degrees. Without
--precision it is inferred from the decimals given, so 45.37 is resolved to
0.005 degrees:

$ geohash encode --lat 45.37 --lon -121.7
c216ne
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if length != 0 && precision != 0 {
				return fmt.Errorf("--precision and --length are mutually exclusive")
			}

			res := models.EncodeResult{Latitude: lat, Longitude: lon}
			if length != 0 {
				hash, err := geohash.EncodeWithLength(lat, lon, length)
				if err != nil {
					return err
				}
				cell, err := geohash.DecodeExact(hash)
				if err != nil {
					return err
				}
				res.Hash, res.Precision = hash, cell.Precision
			} else {
				g := geohash.FromCoordinates(lat, lon, precision)
				hash, err := g.Hash()
				if err != nil {
					return err
				}
				res.Hash, res.Precision = hash, g.Precision()
			}
			res.Length = len(res.Hash)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Hash)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees, [-90, 90]")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees, [-180, 180]")
	cmd.Flags().Float64Var(&precision, "precision", 0, "wanted precision in degrees, inferred when 0")
	cmd.Flags().IntVar(&length, "length", 0, "exact number of characters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	var exact, asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <hash>...",
		Short: "Decode geohashes into coordinates",
		Long: `Decode prints, for each hash, the hash, latitude, longitude and precision
separated by tabs.

$ geohash decode c216ne
c216ne	45.37	-121.7	0.0054931640625
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decode := geohash.Decode
			if exact {
				decode = geohash.DecodeExact
			}

			out := cmd.OutOrStdout()
			for _, hash := range args {
				hash = strings.ToLower(hash)
				c, err := decode(hash)
				if err != nil {
					return err
				}
				coord := models.Coordinate{Hash: hash, Latitude: c.Latitude, Longitude: c.Longitude, Precision: c.Precision}
				if asJSON {
					if err := writeJSON(out, coord); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", coord.Hash,
					formatFloat(coord.Latitude), formatFloat(coord.Longitude), formatFloat(coord.Precision))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "do not round the cell centre")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON, one object per line")

	return cmd
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(w io.Writer, v interface{}) error {
	s, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", s)
	return err
}
