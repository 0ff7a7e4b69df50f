package calmar

// seasonNames maps season numbers 1-7 to their common names. Season seven,
// Onset, closes the cycle and owns the Festival week.
var seasonNames = [8]string{"", "Winter", "Thaw", "Spring", "Perihelion", "High Summer", "Autumn", "Onset"}

// dayNames and dayShortNames map day numbers 1-7 within an ordinary week.
var dayNames = [8]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var dayShortNames = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// festivalNames and festivalShortNames map day numbers within the terminal
// Festival week, which can run to eight days in cycle 700.
var festivalNames = [9]string{
	"",
	"Festival One", "Festival Two", "Festival Three", "Festival Four",
	"Festival Five", "Festival Six", "Festival Seven", "Festival Eight",
}

var festivalShortNames = [9]string{
	"", "Fest 1", "Fest 2", "Fest 3", "Fest 4", "Fest 5", "Fest 6", "Fest 7", "Fest 8",
}
