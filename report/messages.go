package report

import (
	"fmt"
	"io"
)

const NoDataMessage = "Nenhum dado de processo foi encontrado para a última semana."

func WriteNoData(w io.Writer) {
	fmt.Fprintln(w, NoDataMessage)
}

// WriteSourceUnavailable suggests running with administrator rights.
func WriteSourceUnavailable(w io.Writer, err error) {
	fmt.Fprintf(w, "Erro ao acessar a lista de processos. Verifique se você tem permissão de administrador. Erro: %v\n", err)
}

func WriteFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "Ocorreu um erro: %v\n", err)
}
