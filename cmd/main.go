package main

import (
	"github.com/freshmart/storefront/internal/app"
	"github.com/freshmart/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
