package main

import (
	"os"

	"github.com/botanoz/turistpassfinal-sub000/internal/app"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application exited with error")
		os.Exit(1)
	}
}
