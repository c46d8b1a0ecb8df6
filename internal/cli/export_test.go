package cli

var OpenStore = openStore
