// Command cashier settles one sale against a freshly stocked Euro drawer and
// prints the change to give back.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"cashier-api/internal/drawer"
	"cashier-api/internal/money"
	"cashier-api/internal/printer"
)

func main() {
	priceFlag := flag.String("price", "3.87", "price of the sale in Euro")
	paidFlag := flag.String("paid", "12", "amount handed over in Euro")
	showInventory := flag.Bool("inventory", false, "print the drawer after settling")
	flag.Parse()

	if err := run(os.Stdout, *priceFlag, *paidFlag, *showInventory); err != nil {
		fmt.Fprintln(os.Stderr, "cashier:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, priceArg, paidArg string, showInventory bool) error {
	price, err := money.Parse(priceArg)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	paid, err := money.Parse(paidArg)
	if err != nil {
		return fmt.Errorf("paid: %w", err)
	}

	d := drawer.NewEuro()
	res, err := d.Settle(price, paid)
	if err != nil {
		return err
	}

	p := printer.New(w)
	if err := p.Settlement(res); err != nil {
		return err
	}
	if showInventory {
		return p.Inventory(d.Inventory(), d.Total())
	}
	return nil
}
