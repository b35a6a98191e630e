/*
Package main implements G.REPL, an interactive command line interface
for experimenting with the GLL combinator engine.

Users pick one of the built-in demo grammars and enter input strings;
G.REPL runs a parse and prints every interpretation the engine
enumerates, including all readings of ambiguous input. Grammars are
constructed programmatically from combinators — there is no grammar
source language.

	$ grepl -grammar abc
	grepl> abcabcabc

Commands: ':grammars' lists the demo grammars, ':grammar <name>'
switches between them. Quit with ctrl-D.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main
