package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MarcGrol/delivecrous/services/catalog"
	"github.com/MarcGrol/delivecrous/services/catalog/catalogapi"
)

type dishAdder interface {
	AddDish(c context.Context, form catalogapi.DishForm) (catalog.Dish, error)
}

// readDishes parses records of the form name;description;price;imageUrl
func readDishes(reader io.Reader) ([]catalogapi.DishForm, error) {
	dishes := []catalogapi.DishForm{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = ';'
	csvReader.Comment = '#'
	csvReader.FieldsPerRecord = 4
	csvReader.TrimLeadingSpace = true

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		price, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid price for dish %q: %s", record[0], err)
		}

		dishes = append(dishes, catalogapi.DishForm{
			Name:        record[0],
			Description: record[1],
			Price:       price,
			ImageURL:    record[3],
		})
	}

	return dishes, nil
}

func seedCatalog(c context.Context, adder dishAdder, filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	forms, err := readDishes(file)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %s", filename, err)
	}

	for _, form := range forms {
		_, err := adder.AddDish(c, form)
		if err != nil {
			return 0, fmt.Errorf("error adding dish %q: %w", form.Name, err)
		}
	}

	return len(forms), nil
}
