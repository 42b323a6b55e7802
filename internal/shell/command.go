package shell

// cmdKind enumerates the closed set of shell commands. Adding a command
// means adding a variant here, a table entry below and a case in the
// dispatcher switch, all checked at compile time.
type cmdKind int

const (
	cmdLs cmdKind = iota
	cmdMkdir
	cmdTouch
	cmdCd
	cmdRm
	cmdRename
	cmdCp
	cmdMv
	cmdNewFileText
	cmdAppendText
	cmdEditLine
	cmdDeleteLine
	cmdCat
	cmdHelp
	cmdExit
)

// command describes one shell command: its usage line and the accepted
// argument counts (excluding the command name itself). maxArgs of -1 means
// unbounded trailing arguments.
type command struct {
	kind    cmdKind
	usage   string
	minArgs int
	maxArgs int
}

// commands maps command names to their descriptors. Help output comes from
// the fixed helpText block, not from iterating this map.
var commands = map[string]command{
	"ls":        {kind: cmdLs, usage: "ls", minArgs: 0, maxArgs: 0},
	"mkdir":     {kind: cmdMkdir, usage: "mkdir [<path>] <folder_name>", minArgs: 1, maxArgs: 2},
	"touch":     {kind: cmdTouch, usage: "touch [<path>] <file_name>.txt", minArgs: 1, maxArgs: 2},
	"cd":        {kind: cmdCd, usage: "cd <path>", minArgs: 1, maxArgs: 1},
	"rm":        {kind: cmdRm, usage: "rm <path>", minArgs: 1, maxArgs: 1},
	"rename":    {kind: cmdRename, usage: "rename <path> <new_name>", minArgs: 2, maxArgs: 2},
	"cp":        {kind: cmdCp, usage: "cp <source_path> <destination_path>", minArgs: 2, maxArgs: 2},
	"mv":        {kind: cmdMv, usage: "mv <source_path> <destination_path>", minArgs: 2, maxArgs: 2},
	"nwfiletxt": {kind: cmdNewFileText, usage: "nwfiletxt <path>", minArgs: 1, maxArgs: 1},
	"appendtxt": {kind: cmdAppendText, usage: "appendtxt <path>", minArgs: 1, maxArgs: 1},
	"editline":  {kind: cmdEditLine, usage: "editline <path> <line_number> <new_text>", minArgs: 3, maxArgs: -1},
	"deline":    {kind: cmdDeleteLine, usage: "deline <path> <line_number>", minArgs: 2, maxArgs: 2},
	"cat":       {kind: cmdCat, usage: "cat <path>", minArgs: 1, maxArgs: 1},
	"help":      {kind: cmdHelp, usage: "help", minArgs: 0, maxArgs: 0},
	"exit":      {kind: cmdExit, usage: "exit", minArgs: 0, maxArgs: 0},
}

const helpText = `Available commands:
    ls                                        : List contents of current directory
    mkdir [<path>] <folder_name>              : Create a directory
    touch [<path>] <file_name>.txt            : Create a text file
    cd <path>                                 : Change directory
    rm <path>                                 : Remove file or directory recursively
    rename <path> <new_name>                  : Rename a file or directory
    cp <source_path> <destination_path>       : Copy file or directory
    mv <source_path> <destination_path>       : Move or rename file or directory
    nwfiletxt <path>                          : Overwrite file content
    appendtxt <path>                          : Append text to file
    editline <path> <line_number> <new_text>  : Edit a specific line in a text file
    deline <path> <line_number>               : Delete a specific line from a text file
    cat <path>                                : Display contents of a text file
    help                                      : Show this help message
    exit                                      : Exit the program`
