package main

import (
	"flag"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configsdatabase"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	database.Initialize(configs.GetDB(), *migrateFlag, *seedFlag)
}
