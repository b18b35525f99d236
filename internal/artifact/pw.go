package artifact

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

// PWDocument is the part of the ground-state XML data file that westcheck
// reads. The root element name is not checked.
type PWDocument struct {
	Output *PWOutput `xml:"output"`
}

// PWOutput is the <output> section of the ground-state data file.
type PWOutput struct {
	TotalEnergy *PWTotalEnergy `xml:"total_energy"`
}

// PWTotalEnergy holds the energy terms of the ground-state run.
type PWTotalEnergy struct {
	Etot *string `xml:"etot"`
}

// ReadPWDocument parses a ground-state XML data file.
func ReadPWDocument(path string) (*PWDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var doc PWDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.Error{
			Kind:    errors.KindFormat,
			Message: "invalid XML",
			File:    path,
			Cause:   err,
		}
	}

	switch {
	case doc.Output == nil:
		return nil, missing(path, "output")
	case doc.Output.TotalEnergy == nil:
		return nil, missing(path, "output/total_energy")
	case doc.Output.TotalEnergy.Etot == nil:
		return nil, missing(path, "output/total_energy/etot")
	}
	return &doc, nil
}

// ReadTotalEnergy returns the total energy stored at output/total_energy/etot.
func ReadTotalEnergy(path string) (float64, error) {
	doc, err := ReadPWDocument(path)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(*doc.Output.TotalEnergy.Etot)
	etot, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Formatf(path, "output/total_energy/etot", "not a real number: %q", text)
	}
	return etot, nil
}
