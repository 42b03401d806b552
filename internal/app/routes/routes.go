package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	facultyController *controllers.FacultyController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
) {
	router.GET("/ping", healthController.Ping)

	api := router.Group("/api")

	api.GET("/health", healthController.Health)

	faculty := api.Group("/faculty")
	{
		faculty.GET("", facultyController.GetAllFaculty)
		faculty.POST("", facultyController.CreateFaculty)
		faculty.DELETE("/:id", facultyController.DeleteFaculty)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.POST("", courseController.CreateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	students := api.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
