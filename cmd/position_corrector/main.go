package main

import "log"

func main() {
	if err := NewApp().Run(); err != nil {
		log.Fatal("position_corrector: ", err.Error())
	}
}
