package main

import "github.com/marraa99/Intermittent-Fasting-Calculator/cmd/ifcalc"

func main() {
	ifcalc.Execute()
}
